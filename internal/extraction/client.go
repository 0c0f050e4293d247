package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Outcome is the structured result of one document AI call. The engine never
// sees raw document bytes, only this.
type Outcome struct {
	Success    bool
	Values     map[string]any
	Confidence float64
	Method     string
	Message    string
}

// Client extracts the financially relevant values from one document.
type Client interface {
	Extract(ctx context.Context, filePath, docTypeHint string) (Outcome, error)
}

// HTTPClient talks to the hosted document AI service.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient returns a client for the document AI service. Extraction of
// a single scanned document can take a while, hence the long timeout.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type extractRequest struct {
	FilePath     string `json:"file_path"`
	DocumentType string `json:"document_type"`
}

type extractResponse struct {
	Success           bool           `json:"success"`
	ExtractedValues   map[string]any `json:"extracted_values"`
	OverallConfidence *float64       `json:"overall_confidence"`
	ConfidenceScore   *float64       `json:"confidence_score"`
	ExtractionMethod  string         `json:"extraction_method"`
	Message           string         `json:"message"`
}

// Extract implements the Client interface.
func (c *HTTPClient) Extract(ctx context.Context, filePath, docTypeHint string) (Outcome, error) {
	body, err := json.Marshal(extractRequest{
		FilePath:     filePath,
		DocumentType: docTypeHint,
	})
	if err != nil {
		return Outcome{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-comprehensive", bytes.NewReader(body))
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{}, fmt.Errorf("document AI returned status %d", resp.StatusCode)
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Outcome{}, fmt.Errorf("decoding document AI response: %w", err)
	}

	// Older deployments report confidence_score instead of
	// overall_confidence
	confidence := 0.0
	if decoded.OverallConfidence != nil {
		confidence = *decoded.OverallConfidence
	} else if decoded.ConfidenceScore != nil {
		confidence = *decoded.ConfidenceScore
	}

	return Outcome{
		Success:    decoded.Success,
		Values:     decoded.ExtractedValues,
		Confidence: confidence,
		Method:     decoded.ExtractionMethod,
		Message:    decoded.Message,
	}, nil
}
