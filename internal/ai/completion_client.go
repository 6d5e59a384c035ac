package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// CompletionClient talks to the HTTP completion service that drafts
// petitions. Calls run behind a circuit breaker so a misbehaving AI backend
// fails fast instead of tying up generation sessions.
type CompletionClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	breaker    *gobreaker.CircuitBreaker
}

// CompletionRequest is the completion service request payload.
type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

// CompletionResponse is the completion service response payload.
type CompletionResponse struct {
	Text string `json:"text"`
}

// NewCompletionClient creates a client for the completion service configured
// via AI_SERVICE_URL.
func NewCompletionClient() *CompletionClient {
	baseURL := os.Getenv("AI_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://petition-ai-service:8000"
		log.Printf("WARN: AI_SERVICE_URL not set, defaulting to %s", baseURL)
	}

	settings := gobreaker.Settings{
		Name:        "petition-ai",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s changed from %s to %s", name, from, to)
		},
	}

	return &CompletionClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // petition drafting is a long call
		},
		tracer:  otel.Tracer("petition-ai-client"),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// SetBaseURL sets the base URL for testing purposes
func (c *CompletionClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Generate sends one prompt and returns the drafted petition text.
func (c *CompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "petition_ai.generate")
	defer span.End()

	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.generateInternal(ctx, prompt)
	})

	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to invoke petition AI service: %w", err)
	}

	text := result.(string)
	span.SetAttributes(attribute.Int("response.length", len(text)))

	return text, nil
}

// generateInternal performs the actual HTTP request
func (c *CompletionClient) generateInternal(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(CompletionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/completions", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	// Inject trace context
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("AI service returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return "", fmt.Errorf("AI service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var completionResp CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completionResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return completionResp.Text, nil
}

// Healthy checks if the AI service is reachable.
func (c *CompletionClient) Healthy(ctx context.Context) bool {
	ctx, span := c.tracer.Start(ctx, "petition_ai.health_check")
	defer span.End()

	if c.breaker.State() == gobreaker.StateOpen {
		span.SetAttributes(attribute.Bool("healthy", false), attribute.String("reason", "circuit_breaker_open"))
		return false
	}

	url := fmt.Sprintf("%s/health", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		span.RecordError(err)
		return false
	}

	// Short timeout for health checks
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return false
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode == http.StatusOK
	span.SetAttributes(attribute.Bool("healthy", healthy))

	return healthy
}
