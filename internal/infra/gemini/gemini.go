package infra_gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/spotilove/core/internal/config"
	"github.com/spotilove/core/internal/model"
)

var (
	ErrBadStatus = errors.New("gemini returned non-2xx status")
	ErrNoScore   = errors.New("no score in gemini response")
)

// Client is a long-lived, concurrency-safe handle to the external scoring
// signal. Construct once and share; the underlying http.Client pools
// connections.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func New(cfg config.Gemini) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

const promptTemplate = `Calculate music compatibility between two people.

Person A:
Genres: %s
Artists: %s
Songs: %s

Person B:
Genres: %s
Artists: %s
Songs: %s

Use these weights:
- Genres: 30%%
- Artists: 40%%
- Songs: 30%%

IMPORTANT: Return ONLY a single integer number between 0 and 100.
Do not include any explanation, code, markdown, or other text.`

// CompatibilityScore asks the signal for a score in [0, 100]. The response
// contract is loose: the integer may arrive wrapped in code fences, percent
// signs or prose, so the first plausible integer token is extracted and
// clamped. Anything without one is ErrNoScore.
func (c *Client) CompatibilityScore(ctx context.Context, a, b model.MusicProfile) (int, error) {
	prompt := fmt.Sprintf(promptTemplate,
		strings.Join(a.Genres, ", "), strings.Join(a.Artists, ", "), strings.Join(a.Songs, ", "),
		strings.Join(b.Genres, ", "), strings.Join(b.Artists, ", "), strings.Join(b.Songs, ", "),
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("gemini call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return 0, ErrNoScore
	}

	return ExtractScore(parsed.Candidates[0].Content.Parts[0].Text)
}

var numberPattern = regexp.MustCompile(`\b(\d{1,3})\b`)

// ExtractScore pulls the first 1-3 digit integer out of free-form text,
// stripping common markdown noise first, and clamps it to [0, 100].
func ExtractScore(text string) (int, error) {
	replacer := strings.NewReplacer(
		"```python", "",
		"```", "",
		"`", "",
		"%", "",
		"*", "",
	)
	text = strings.TrimSpace(replacer.Replace(text))
	if text == "" {
		return 0, ErrNoScore
	}

	if n, err := strconv.Atoi(text); err == nil {
		return clamp(n), nil
	}

	match := numberPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, ErrNoScore
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, ErrNoScore
	}
	return clamp(n), nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
