package research

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/research/reddit"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// ErrNoResults means every community yielded nothing usable; callers
// substitute the synthetic fallback.
var ErrNoResults = errors.New("research produced no usable posts")

// RedditAPI is the subset of the Reddit client the collector needs
type RedditAPI interface {
	SearchPosts(ctx context.Context, subreddit, query, sort string, limit int) ([]reddit.Post, error)
	HotPosts(ctx context.Context, subreddit string, limit int) ([]reddit.Post, error)
	TopComments(ctx context.Context, subreddit, postID string, limit int) ([]reddit.Comment, error)
}

// LiveCollector researches a topic through the authenticated Reddit API
type LiveCollector struct {
	api                RedditAPI
	maxCommentsPerPost int
	communityDelay     time.Duration
	log                *logger.Logger
}

// NewLiveCollector creates a collector backed by the Reddit API
func NewLiveCollector(api RedditAPI, maxCommentsPerPost int, communityDelay time.Duration, log *logger.Logger) *LiveCollector {
	if maxCommentsPerPost <= 0 {
		maxCommentsPerPost = 10
	}
	return &LiveCollector{
		api:                api,
		maxCommentsPerPost: maxCommentsPerPost,
		communityDelay:     communityDelay,
		log:                log.WithComponent("research"),
	}
}

var _ Collector = (*LiveCollector)(nil)

// searchQueries builds the ordered multi-strategy query list for a topic
func searchQueries(topic string) []string {
	return []string{
		topic,
		topic + " problem",
		topic + " help",
		topic + " advice",
		topic + " beginner",
	}
}

// ResearchTopic runs the multi-strategy scrape across all communities and
// tallies lexical signals into a ResearchInsights record.
func (c *LiveCollector) ResearchTopic(ctx context.Context, topic string, communities []string, maxPostsPerCommunity int) (models.ResearchInsights, error) {
	if maxPostsPerCommunity <= 0 {
		maxPostsPerCommunity = 5
	}

	a := newAnalyzer(topic)
	var lastErr error

	for i, community := range communities {
		if i > 0 && c.communityDelay > 0 {
			// Courtesy delay between community scrapes; not a correctness
			// requirement, just avoids tripping abuse protection.
			select {
			case <-ctx.Done():
				return models.ResearchInsights{}, ctx.Err()
			case <-time.After(c.communityDelay):
			}
		}

		if err := c.researchCommunity(ctx, a, topic, community, maxPostsPerCommunity); err != nil {
			c.log.Warn().Err(err).Str("community", community).Msg("Community research failed")
			lastErr = err
		}
	}

	if a.insights.PostsAnalyzed == 0 {
		if lastErr != nil {
			return models.ResearchInsights{}, fmt.Errorf("all communities failed: %w", lastErr)
		}
		return models.ResearchInsights{}, ErrNoResults
	}

	insights := a.finish()

	c.log.Info().
		Int("posts", insights.PostsAnalyzed).
		Int("comments", insights.CommentsAnalyzed).
		Float64("quality_score", insights.ResearchQualityScore).
		Msg("Research completed")

	return insights, nil
}

// researchCommunity collects up to maxPosts relevant posts from one community,
// walking the search strategies in order before falling back to the trending
// listing.
func (c *LiveCollector) researchCommunity(ctx context.Context, a *analyzer, topic, community string, maxPosts int) error {
	collected := 0
	seen := make(map[string]bool)
	var lastErr error

	consume := func(posts []reddit.Post) {
		for _, post := range posts {
			if collected >= maxPosts || seen[post.ID] {
				continue
			}
			text := post.Title + "\n" + post.SelfText
			if !isRelevant(topic, text) {
				continue
			}
			seen[post.ID] = true
			collected++
			a.insights.PostsAnalyzed++
			a.addText(text, false)
			c.analyzeComments(ctx, a, community, post.ID)
		}
	}

	for _, query := range searchQueries(topic) {
		if collected >= maxPosts {
			return nil
		}
		posts, err := c.api.SearchPosts(ctx, community, query, "relevance", maxPosts*2)
		if err != nil {
			lastErr = err
			continue
		}
		consume(posts)
	}

	if collected < maxPosts {
		posts, err := c.api.SearchPosts(ctx, community, topic, "new", maxPosts*2)
		if err != nil {
			lastErr = err
		} else {
			consume(posts)
		}
	}

	if collected < maxPosts {
		posts, err := c.api.HotPosts(ctx, community, maxPosts*2)
		if err != nil {
			lastErr = err
		} else {
			consume(posts)
		}
	}

	if collected == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

// analyzeComments pulls top-scored comments for a post into the analyzer.
// Comment failures are non-fatal; the post's own text already counted.
func (c *LiveCollector) analyzeComments(ctx context.Context, a *analyzer, community, postID string) {
	comments, err := c.api.TopComments(ctx, community, postID, c.maxCommentsPerPost)
	if err != nil {
		c.log.Debug().Err(err).Str("post_id", postID).Msg("Failed to fetch comments")
		return
	}
	for _, comment := range comments {
		a.insights.CommentsAnalyzed++
		a.addText(comment.Body, true)
	}
}
