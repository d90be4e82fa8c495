package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultGraphQLURL   = "https://leetcode.com/graphql"
	defaultStatsBaseURL = "https://alfa-leetcode-api.onrender.com"
)

// ErrUserNotFound means the upstream answered but had no matching account.
var ErrUserNotFound = errors.New("leetcode user not found")

const userProfileQuery = `query getUserProfile($username: String!) {
  allQuestionsCount { difficulty count }
  matchedUser(username: $username) {
    username
    submitStats {
      acSubmissionNum { difficulty count submissions }
      totalSubmissionNum { difficulty count submissions }
    }
    profile { ranking starRating }
    badges { id displayName icon creationDate }
    submissionCalendar
  }
}`

// Client talks to the two stats upstreams: the LeetCode GraphQL endpoint for
// the profile and alfa-leetcode-api for language/skill breakdowns.
type Client struct {
	HTTP         *http.Client
	GraphQLURL   string
	StatsBaseURL string
}

func NewClient() *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: 12 * time.Second},
		GraphQLURL:   defaultGraphQLURL,
		StatsBaseURL: defaultStatsBaseURL,
	}
}

// FetchUser resolves a username against the profile upstream. It returns the
// decoded profile plus the raw response payload so callers can preserve it
// verbatim. A response without matchedUser.username maps to ErrUserNotFound.
// One attempt, no retries.
func (c *Client) FetchUser(ctx context.Context, username string) (*UserProfile, json.RawMessage, error) {
	if strings.TrimSpace(username) == "" {
		return nil, nil, errors.New("username is required")
	}

	body, err := json.Marshal(map[string]any{
		"query":     userProfileQuery,
		"variables": map[string]string{"username": username},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build profile query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "leetboard/1.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("profile upstream returned %d", resp.StatusCode)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, nil, fmt.Errorf("decode profile response: %w", err)
	}

	var profile UserProfile
	if err := json.Unmarshal(envelope.Data, &profile); err != nil {
		return nil, nil, fmt.Errorf("decode profile payload: %w", err)
	}

	if profile.MatchedUser == nil || profile.MatchedUser.Username == "" {
		return nil, nil, ErrUserNotFound
	}

	return &profile, envelope.Data, nil
}

// FetchLanguageStats is best effort; callers store NULL when it fails.
func (c *Client) FetchLanguageStats(ctx context.Context, username string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.StatsBaseURL+"/languageStats?username="+url.QueryEscape(username))
}

// FetchSkillStats is best effort; callers store NULL when it fails.
func (c *Client) FetchSkillStats(ctx context.Context, username string) (json.RawMessage, error) {
	return c.getJSON(ctx, c.StatsBaseURL+"/skillStats/"+url.PathEscape(username))
}

func (c *Client) getJSON(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "leetboard/1.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stats upstream returned %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stats response: %w", err)
	}
	if !json.Valid(payload) {
		return nil, errors.New("stats upstream returned invalid json")
	}
	return payload, nil
}
