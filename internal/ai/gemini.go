package ai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// GeminiClient drafts petitions through the Google Gemini API instead of the
// standalone completion service. Selected when GEMINI_API_KEY is configured.
type GeminiClient struct {
	client *genai.Client
	model  string
	tracer trace.Tracer
}

// NewGeminiClient creates a Gemini-backed text generator.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		tracer: otel.Tracer("gemini-client"),
	}, nil
}

// Generate sends one prompt and returns the drafted petition text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "gemini.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("gemini.model", g.model),
		attribute.Int("prompt.length", len(prompt)),
	)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	span.SetAttributes(attribute.Int("response.length", len(text)))
	return text, nil
}

// Healthy reports whether the client is usable. The Gemini SDK holds no
// connection, so a constructed client is considered healthy.
func (g *GeminiClient) Healthy(ctx context.Context) bool {
	return g.client != nil
}
