package infra_gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/spotilove/core/internal/config"
	"github.com/spotilove/core/internal/model"
	"github.com/stretchr/testify/assert"
)

type GeminiUnitSuite struct {
	suite.Suite
}

func (s *GeminiUnitSuite) TestExtractScore(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		text        string
		expected    int
		expectError bool
	}{
		{name: "Plain integer", text: "45", expected: 45},
		{name: "Integer with whitespace", text: "  78\n", expected: 78},
		{name: "Percent sign", text: "78%", expected: 78},
		{name: "Code fences", text: "```78```", expected: 78},
		{name: "Python fence", text: "```python\n82\n```", expected: 82},
		{name: "Wrapped in prose", text: "approximately 80 percent", expected: 80},
		{name: "Markdown emphasis", text: "**91**", expected: 91},
		{name: "Clamped above range", text: "250 out of 100", expected: 100},
		{name: "Empty text", text: "", expectError: true},
		{name: "No digits at all", text: "not comparable", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			score, err := ExtractScore(tc.text)

			if tc.expectError {
				assert.ErrorIs(t, err, ErrNoScore)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, score)
			}
		})
	}
}

func validProfile() model.MusicProfile {
	return model.MusicProfile{
		Genres:  []string{"pop", "rock"},
		Artists: []string{"Daft Punk"},
		Songs:   []string{"One More Time"},
	}
}

func geminiResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
}

func (s *GeminiUnitSuite) TestCompatibilityScore(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		handler     http.HandlerFunc
		expected    int
		expectError bool
		expectedErr error
	}{
		{
			name: "Should parse clean integer response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(geminiResponse("45"))
			},
			expected: 45,
		},
		{
			name: "Should tolerate wrapped response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(geminiResponse("```\napproximately 80%\n```"))
			},
			expected: 80,
		},
		{
			name: "Should fail on non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			expectError: true,
			expectedErr: ErrBadStatus,
		},
		{
			name: "Should fail when no candidates returned",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
			},
			expectError: true,
			expectedErr: ErrNoScore,
		},
		{
			name: "Should fail when text has no number",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(geminiResponse("cannot say"))
			},
			expectError: true,
			expectedErr: ErrNoScore,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client := New(config.Gemini{
				APIKey:  "test-key",
				BaseURL: server.URL,
				Model:   "gemini-2.5-flash",
				Timeout: 5 * time.Second,
			})

			score, err := client.CompatibilityScore(context.Background(), validProfile(), validProfile())

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, score)
			}
		})
	}
}

func (s *GeminiUnitSuite) TestRequestShape(t provider.T) {
	t.Parallel()

	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(geminiResponse("50"))
	}))
	defer server.Close()

	client := New(config.Gemini{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-2.5-flash",
		Timeout: 5 * time.Second,
	})

	_, err := client.CompatibilityScore(context.Background(), validProfile(), validProfile())

	assert.NoError(t, err)
	if assert.Len(t, captured.Contents, 1) {
		assert.Equal(t, "user", captured.Contents[0].Role)
		assert.Contains(t, captured.Contents[0].Parts[0].Text, "Daft Punk")
		assert.Contains(t, captured.Contents[0].Parts[0].Text, "Genres: 30%")
	}
}

func TestGeminiUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(GeminiUnitSuite))
}
