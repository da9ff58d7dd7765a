package generator

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

// TemplateStrategy renders a content-type-specific Markdown skeleton by pure
// string assembly. Deterministic given its inputs; never fails.
type TemplateStrategy struct{}

// NewTemplateStrategy creates the template-based generation strategy
func NewTemplateStrategy() *TemplateStrategy {
	return &TemplateStrategy{}
}

var _ Strategy = (*TemplateStrategy)(nil)

// Generate renders the skeleton for the requested content type.
// Unrecognized types render the comprehensive guide.
func (s *TemplateStrategy) Generate(_ context.Context, input Input) (models.GeneratedDocument, error) {
	contentType := models.NormalizeContentType(string(input.ContentType))

	var body string
	switch contentType {
	case models.ContentTypeBlogPost:
		body = s.renderBlogPost(input)
	case models.ContentTypeHowTo:
		body = s.renderHowTo(input)
	case models.ContentTypeListicle:
		body = s.renderListicle(input)
	case models.ContentTypeComparison:
		body = s.renderComparison(input)
	default:
		body = s.renderGuide(input)
	}

	return models.NewGeneratedDocument(contentType, body), nil
}

// humanizeLabel turns a pain-point key like "cost_concerns" into prose
func humanizeLabel(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}

// titleCase capitalizes each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func (s *TemplateStrategy) painPointSection(input Input) string {
	var b strings.Builder
	points := input.Research.TopPainPoints(3)
	if len(points) == 0 {
		points = input.Journey.KeyPainPoints
	}
	for _, p := range points {
		fmt.Fprintf(&b, "- **%s** keeps coming up in real discussions about %s.\n",
			titleCase(humanizeLabel(p)), input.Topic)
	}
	return b.String()
}

func (s *TemplateStrategy) voiceOfCustomerSection(input Input) string {
	if len(input.Research.CustomerQuotes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## What people are actually saying\n\n")
	for _, quote := range input.Research.CustomerQuotes {
		fmt.Fprintf(&b, "> %s\n\n", quote)
	}
	return b.String()
}

func (s *TemplateStrategy) questionsSection(input Input) string {
	questions := input.Research.FrequentQuestions
	if len(questions) == 0 && strings.TrimSpace(input.Human.FrequentQuestions) != "" {
		questions = []string{input.Human.FrequentQuestions}
	}
	if len(questions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Frequently asked questions\n\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "### %s\n\nDrawing on our experience as a %s in %s: %s\n\n",
			q, input.Business.BusinessType, input.Business.Industry, input.Business.UniqueValueProp)
	}
	return b.String()
}

func (s *TemplateStrategy) storySection(input Input) string {
	if strings.TrimSpace(input.Human.SuccessStory) == "" {
		return ""
	}
	return fmt.Sprintf("## A result we've seen first-hand\n\n%s\n\n", input.Human.SuccessStory)
}

func (s *TemplateStrategy) intro(input Input) string {
	return fmt.Sprintf(
		"If you're researching %s, you've probably noticed the same thing %s keep running into: %s.\n\n"+
			"This %s is written for %s, in a %s voice, with one goal: %s.\n\n",
		input.Topic,
		input.Business.TargetAudience,
		firstOr(input.Journey.KeyPainPoints, "too much conflicting advice"),
		humanizeLabel(string(input.ContentType)),
		input.Business.TargetAudience,
		input.Business.BrandVoice,
		input.Business.ContentGoal,
	)
}

func (s *TemplateStrategy) renderGuide(input Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# The Complete Guide to %s\n\n", input.Topic)
	b.WriteString(s.intro(input))
	b.WriteString("## The problems this guide solves\n\n")
	b.WriteString(s.painPointSection(input))
	b.WriteString("\n")
	b.WriteString(s.voiceOfCustomerSection(input))
	fmt.Fprintf(&b, "## What matters when evaluating %s\n\n", input.Topic)
	fmt.Fprintf(&b, "Our perspective as a %s: %s\n\n", input.Business.BusinessType, input.Business.UniqueValueProp)
	if strings.TrimSpace(input.Human.CustomerPainPoints) != "" {
		fmt.Fprintf(&b, "From talking to our own customers: %s\n\n", input.Human.CustomerPainPoints)
	}
	b.WriteString(s.storySection(input))
	b.WriteString(s.questionsSection(input))
	fmt.Fprintf(&b, "## Next steps\n\nStart small, keep notes on what works, and revisit this guide to %s as your needs change.\n", input.Topic)
	return b.String()
}

func (s *TemplateStrategy) renderBlogPost(input Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: What Nobody Tells You\n\n", titleCase(input.Topic))
	b.WriteString(s.intro(input))
	b.WriteString("## The real frustrations\n\n")
	b.WriteString(s.painPointSection(input))
	b.WriteString("\n")
	b.WriteString(s.voiceOfCustomerSection(input))
	b.WriteString(s.storySection(input))
	fmt.Fprintf(&b, "## Our take\n\n%s\n\n", input.Business.UniqueValueProp)
	fmt.Fprintf(&b, "## The bottom line\n\nApproach %s with the %s mindset: %s.\n",
		input.Topic, input.Journey.PrimaryStage, input.Business.ContentGoal)
	return b.String()
}

func (s *TemplateStrategy) renderHowTo(input Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# How to Get Started with %s\n\n", input.Topic)
	b.WriteString(s.intro(input))
	b.WriteString("## Before you start\n\n")
	b.WriteString(s.painPointSection(input))
	b.WriteString("\n## Step-by-step\n\n")
	steps := []string{
		fmt.Sprintf("Write down what you actually need from %s before looking at any options.", input.Topic),
		"Set a realistic budget, including the costs people forget about.",
		fmt.Sprintf("Shortlist two or three options for %s and compare them against your list, not against ads.", input.Topic),
		"Test the smallest version first and only commit once it proves itself.",
	}
	for i, step := range steps {
		fmt.Fprintf(&b, "### Step %d\n\n%s\n\n", i+1, step)
	}
	b.WriteString(s.storySection(input))
	b.WriteString(s.questionsSection(input))
	return b.String()
}

func (s *TemplateStrategy) renderListicle(input Input) string {
	var b strings.Builder
	points := input.Research.TopPainPoints(5)
	if len(points) == 0 {
		points = input.Journey.KeyPainPoints
	}
	fmt.Fprintf(&b, "# %d Things to Know About %s\n\n", len(points)+2, input.Topic)
	b.WriteString(s.intro(input))
	n := 1
	for _, p := range points {
		fmt.Fprintf(&b, "## %d. Expect to deal with %s\n\nDiscussions about %s raise this constantly. Plan for it up front.\n\n",
			n, humanizeLabel(p), input.Topic)
		n++
	}
	fmt.Fprintf(&b, "## %d. %s\n\n%s\n\n", n, "Know who you're buying from", input.Business.UniqueValueProp)
	n++
	fmt.Fprintf(&b, "## %d. Ask the questions everyone else asks\n\n", n)
	for _, q := range input.Research.FrequentQuestions {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\n")
	b.WriteString(s.storySection(input))
	return b.String()
}

func (s *TemplateStrategy) renderComparison(input Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comparing Your Options: %s\n\n", input.Topic)
	b.WriteString(s.intro(input))
	b.WriteString("## What people struggle with when comparing\n\n")
	b.WriteString(s.painPointSection(input))
	b.WriteString("\n")
	b.WriteString(s.voiceOfCustomerSection(input))
	b.WriteString("## How to compare fairly\n\n")
	b.WriteString("| Criterion | Why it matters |\n|---|---|\n")
	for _, p := range input.Research.TopPainPoints(4) {
		fmt.Fprintf(&b, "| %s | Raised repeatedly in community discussions |\n", titleCase(humanizeLabel(p)))
	}
	fmt.Fprintf(&b, "\n## Where we stand\n\n%s\n\n", input.Business.UniqueValueProp)
	b.WriteString(s.storySection(input))
	b.WriteString(s.questionsSection(input))
	return b.String()
}

func firstOr(items []string, fallback string) string {
	if len(items) > 0 {
		return items[0]
	}
	return fallback
}
