package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/ratelimit"
)

const (
	baseURL  = "https://oauth.reddit.com"
	tokenURL = "https://www.reddit.com/api/v1/access_token"
)

// Post is a Reddit submission
type Post struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Comment is a Reddit comment
type Comment struct {
	Body          string `json:"body"`
	Author        string `json:"author"`
	Score         int    `json:"score"`
	Distinguished string `json:"distinguished"`
}

// Usable filters deleted, removed, and moderator content
func (c Comment) Usable() bool {
	if c.Body == "" || c.Body == "[deleted]" || c.Body == "[removed]" {
		return false
	}
	if c.Author == "[deleted]" {
		return false
	}
	return c.Distinguished != "moderator"
}

// listing mirrors Reddit's Listing envelope
type listing struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// userAgentTransport injects the required User-Agent header on every request,
// including the token exchange; Reddit throttles default library agents hard.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(clone)
}

// Client handles authenticated Reddit API requests
type Client struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter *ratelimit.MultiLimiter
	log         *logger.Logger
}

// NewClient creates a Reddit client using the OAuth2 client-credentials grant
func NewClient(cfg config.RedditConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	base := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &userAgentTransport{
			agent: cfg.UserAgent,
			base:  http.DefaultTransport,
		},
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	httpClient := cc.Client(ctx)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		httpClient:  httpClient,
		userAgent:   cfg.UserAgent,
		rateLimiter: limiter,
		log:         log.WithComponent("reddit"),
	}
}

// get performs a rate-limited GET against the OAuth API host
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx, ratelimit.LimiterReddit); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	endpoint := baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug().Str("path", path).Msg("Making Reddit API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reddit API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// SearchPosts searches a subreddit. sort is "relevance" or "new".
func (c *Client) SearchPosts(ctx context.Context, subreddit, query, sort string, limit int) ([]Post, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("sort", sort)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var result listing
	if err := c.get(ctx, fmt.Sprintf("/r/%s/search.json", subreddit), params, &result); err != nil {
		return nil, err
	}
	return decodePosts(result), nil
}

// HotPosts returns the currently trending listing for a subreddit
func (c *Client) HotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var result listing
	if err := c.get(ctx, fmt.Sprintf("/r/%s/hot.json", subreddit), params, &result); err != nil {
		return nil, err
	}
	return decodePosts(result), nil
}

// TopComments returns the top-scored comments of a post
func (c *Client) TopComments(ctx context.Context, subreddit, postID string, limit int) ([]Comment, error) {
	params := url.Values{}
	params.Set("sort", "top")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("depth", "1")

	// The comments endpoint returns two listings: the post, then its comments
	var envelopes []listing
	if err := c.get(ctx, fmt.Sprintf("/r/%s/comments/%s.json", subreddit, postID), params, &envelopes); err != nil {
		return nil, err
	}
	if len(envelopes) < 2 {
		return nil, nil
	}

	var comments []Comment
	for _, child := range envelopes[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var comment Comment
		if err := json.Unmarshal(child.Data, &comment); err != nil {
			continue
		}
		if comment.Usable() {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func decodePosts(result listing) []Post {
	posts := make([]Post, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post Post
		if err := json.Unmarshal(child.Data, &post); err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts
}
