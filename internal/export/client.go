package export

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to the document-export service, which turns final petition
// text into a downloadable file. The artifact's binary format is opaque to
// this service; we only hand over title, content and metadata.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Request is the export service request payload.
type Request struct {
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Artifact references a produced download.
type Artifact struct {
	ID          string `json:"id"`
	DownloadURL string `json:"download_url"`
	FileName    string `json:"file_name"`
}

// NewClient creates an export client configured via EXPORT_SERVICE_URL.
func NewClient() *Client {
	baseURL := os.Getenv("EXPORT_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://document-export-service:8002"
		log.Printf("WARN: EXPORT_SERVICE_URL not set, defaulting to %s", baseURL)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		tracer: otel.Tracer("document-export-client"),
	}
}

// SetBaseURL sets the base URL for testing purposes
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Export submits a document for conversion and returns the artifact
// reference.
func (c *Client) Export(ctx context.Context, req Request) (*Artifact, error) {
	ctx, span := c.tracer.Start(ctx, "document_export.export")
	defer span.End()

	span.SetAttributes(
		attribute.String("title", req.Title),
		attribute.Int("content_length", len(req.Content)),
	)

	if req.Title == "" {
		return nil, fmt.Errorf("export title is required")
	}
	if req.Content == "" {
		return nil, fmt.Errorf("export content is required")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/exports", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	// Inject trace context
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to invoke export service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("export service returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		err = fmt.Errorf("export service returned status %d: %s", resp.StatusCode, string(bodyBytes))
		span.RecordError(err)
		return nil, err
	}

	var artifact Artifact
	if err := json.NewDecoder(resp.Body).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	span.SetAttributes(attribute.String("artifact_id", artifact.ID))

	return &artifact, nil
}
