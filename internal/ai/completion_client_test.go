package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionClient(t *testing.T) {
	client := NewCompletionClient()

	assert.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.tracer)
	assert.NotNil(t, client.breaker)
	assert.Contains(t, client.baseURL, "petition-ai")
}

func TestCompletionClient_Generate(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectedError  string
		expectedResult string
	}{
		{
			name: "successful_generation",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "/v1/completions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req CompletionRequest
				err := json.NewDecoder(r.Body).Decode(&req)
				assert.NoError(t, err)
				assert.Contains(t, req.Prompt, "DOS FATOS")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(CompletionResponse{
					Text: "EXCELENTÍSSIMO SENHOR DOUTOR JUIZ",
				})
			},
			expectedResult: "EXCELENTÍSSIMO SENHOR DOUTOR JUIZ",
		},
		{
			name: "server_error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Internal server error"))
			},
			expectedError: "AI service returned status 500",
		},
		{
			name: "invalid_json_response",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("invalid json"))
			},
			expectedError: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := NewCompletionClient()
			client.SetBaseURL(server.URL)

			result, err := client.Generate(context.Background(), "DOS FATOS: o autor alega...")

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}
		})
	}
}

func TestCompletionClient_Healthy(t *testing.T) {
	t.Run("healthy_service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewCompletionClient()
		client.SetBaseURL(server.URL)

		assert.True(t, client.Healthy(context.Background()))
	})

	t.Run("unhealthy_service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewCompletionClient()
		client.SetBaseURL(server.URL)

		assert.False(t, client.Healthy(context.Background()))
	})

	t.Run("unreachable_service", func(t *testing.T) {
		client := NewCompletionClient()
		client.SetBaseURL("http://127.0.0.1:1")

		assert.False(t, client.Healthy(context.Background()))
	})
}

func TestParseSuggestions(t *testing.T) {
	t.Run("parses_both_sections", func(t *testing.T) {
		response := `TESES:
- Inversão do ônus da prova
- Responsabilidade objetiva do fornecedor
JURISPRUDÊNCIAS:
- STJ, REsp 1.234.567/SP
`
		s := parseSuggestions(response)

		assert.Equal(t, []string{
			"Inversão do ônus da prova",
			"Responsabilidade objetiva do fornecedor",
		}, s.Theses)
		assert.Equal(t, []string{"STJ, REsp 1.234.567/SP"}, s.Jurisprudences)
	})

	t.Run("ignores_text_outside_sections", func(t *testing.T) {
		response := "- item antes de qualquer seção\nTESES:\n- tese válida"
		s := parseSuggestions(response)

		assert.Equal(t, []string{"tese válida"}, s.Theses)
		assert.Empty(t, s.Jurisprudences)
	})

	t.Run("empty_response", func(t *testing.T) {
		s := parseSuggestions("")
		assert.Empty(t, s.Theses)
		assert.Empty(t, s.Jurisprudences)
	})
}

func TestSuggestTheses_RequiresFacts(t *testing.T) {
	_, err := SuggestTheses(context.Background(), nil, "Direito Civil", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "facts are required")
}
