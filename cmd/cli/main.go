package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/pipeline"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage/sqlite"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	repo    storage.Repository
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seo-engine",
		Short: "SEO content engine CLI",
		Long: `Generates research-backed content drafts from the command line and
inspects the stored run history.`,
		PersistentPreRunE: initializeApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	repo, err = sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// ============ GENERATE COMMAND ============

func generateCmd() *cobra.Command {
	var (
		topic        string
		communities  []string
		industry     string
		audience     string
		businessType string
		contentGoal  string
		valueProp    string
		brandVoice   string
		painPoints   string
		questions    string
		successStory string
		showDocument bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one content generation pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			limiter := ratelimit.NewDefaultLimiter()
			registry := pipeline.NewRegistry(cfg, limiter, log)
			pipe := pipeline.New(registry, log)

			req := models.RequestContext{
				Topic:             topic,
				TargetCommunities: communities,
				Business: models.BusinessContext{
					Industry:        industry,
					TargetAudience:  audience,
					BusinessType:    businessType,
					ContentGoal:     contentGoal,
					UniqueValueProp: valueProp,
					BrandVoice:      brandVoice,
				},
				Human: models.HumanInputs{
					CustomerPainPoints: painPoints,
					FrequentQuestions:  questions,
					SuccessStory:       successStory,
				},
			}

			result, err := pipe.Run(ctx, req)
			if err != nil {
				return err
			}

			if err := repo.SaveRun(ctx, models.NewRun(result)); err != nil {
				log.Warn().Err(err).Msg("Failed to persist run")
			}

			fmt.Printf("\n=== Generation Result ===\n")
			fmt.Printf("Run ID:        %s\n", result.RunID)
			fmt.Printf("Content Type:  %s\n", result.Document.ContentType)
			fmt.Printf("Word Count:    %d\n", result.Document.WordCount)
			fmt.Printf("Quality:       %.1f/10\n", result.Quality.OverallScore)
			fmt.Printf("E-E-A-T:       %.1f/10\n", result.EEAT.OverallScore)
			fmt.Printf("Research:      %d posts, %d comments (%s)\n",
				result.Research.PostsAnalyzed, result.Research.CommentsAnalyzed, result.Research.SourceTag)
			fmt.Printf("Duration:      %s\n", result.Duration.Round(time.Millisecond))

			if n := result.Status.FallbackCount(); n > 0 {
				fmt.Printf("\nFallback stages (%d):\n", n)
				for _, stage := range models.StageOrder {
					if result.Status.Stages[stage] == models.ModeFallback {
						fmt.Printf("  - %s: %s\n", stage, result.Status.Reasons[stage])
					}
				}
			}

			if len(result.Quality.CriticalImprovements) > 0 {
				fmt.Printf("\nBefore publishing:\n")
				for _, item := range result.Quality.CriticalImprovements {
					fmt.Printf("  - %s\n", item)
				}
			}

			if showDocument {
				fmt.Printf("\n--- Draft ---\n%s\n", result.Document.BodyText)
			} else {
				fmt.Printf("\nUse --show-document to print the draft, or 'runs show %s'.\n", result.RunID)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Content topic (required)")
	cmd.Flags().StringSliceVar(&communities, "communities", nil, "Target subreddit names (required)")
	cmd.Flags().StringVar(&industry, "industry", "", "Business industry")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&businessType, "business-type", "", "Business type")
	cmd.Flags().StringVar(&contentGoal, "goal", "", "Content goal")
	cmd.Flags().StringVar(&valueProp, "value-prop", "", "Unique value proposition")
	cmd.Flags().StringVar(&brandVoice, "voice", "", "Brand voice")
	cmd.Flags().StringVar(&painPoints, "pain-points", "", "Customer pain points you know first-hand")
	cmd.Flags().StringVar(&questions, "questions", "", "Questions customers frequently ask")
	cmd.Flags().StringVar(&successStory, "success-story", "", "A customer success story (optional)")
	cmd.Flags().BoolVar(&showDocument, "show-document", false, "Print the full generated draft")
	cmd.MarkFlagRequired("topic")
	cmd.MarkFlagRequired("communities")

	return cmd
}

// ============ RUNS COMMANDS ============

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored generation runs",
	}

	cmd.AddCommand(runsListCmd())
	cmd.AddCommand(runsShowCmd())
	return cmd
}

func runsListCmd() *cobra.Command {
	var topic string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			filter := storage.DefaultRunFilter()
			filter.Topic = topic
			filter.Limit = limit

			runs, err := repo.ListRuns(ctx, filter)
			if err != nil {
				return err
			}

			fmt.Printf("\n=== Runs (%d) ===\n\n", len(runs))
			for _, r := range runs {
				fmt.Printf("[%s] %s\n", r.ID, r.Topic)
				fmt.Printf("    %s | %d words | quality %.1f | eeat %.1f | research %s\n",
					r.ContentType, r.WordCount, r.QualityScore, r.EEATScore, r.ResearchSource)
				fmt.Printf("    Created: %s\n\n", r.CreatedAt.Format(time.RFC1123))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Filter by topic substring")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show")

	return cmd
}

func runsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show one stored run including the draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			run, err := repo.GetRunByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("run not found: %w", err)
			}

			fmt.Printf("\n=== Run %s ===\n", run.ID)
			fmt.Printf("Topic:        %s\n", run.Topic)
			fmt.Printf("Communities:  %s\n", strings.Join(run.Communities, ", "))
			fmt.Printf("Content Type: %s\n", run.ContentType)
			fmt.Printf("Word Count:   %d\n", run.WordCount)
			fmt.Printf("Quality:      %.1f/10\n", run.QualityScore)
			fmt.Printf("E-E-A-T:      %.1f/10\n", run.EEATScore)
			fmt.Printf("Research:     %s\n", run.ResearchSource)
			fmt.Printf("Created:      %s\n", run.CreatedAt.Format(time.RFC1123))
			fmt.Printf("\n--- Draft ---\n%s\n", run.Document)

			return nil
		},
	}

	return cmd
}

// ============ HEALTH COMMAND ============

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show which components are wired to live upstreams",
		RunE: func(cmd *cobra.Command, args []string) error {
			limiter := ratelimit.NewDefaultLimiter()
			registry := pipeline.NewRegistry(cfg, limiter, log)

			fmt.Printf("\n=== Component Wiring ===\n\n")
			for component, mode := range registry.ComponentModes() {
				fmt.Printf("%-14s %s\n", component, mode)
			}
			fmt.Printf("\n%d component(s) in fallback mode\n", registry.FallbackComponentCount())

			return nil
		},
	}
}
