package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/pkg/config"
	apperrors "github.com/caresure/providerportal/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements the trace-generation collaborator against the Gemini
// API. Its output is advisory: callers validate it and fall back to a
// deterministic trace on any error, timeout or schema violation.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Gemini client
func NewClient(cfg *config.TextGenConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateCandidate struct {
	Content generateContent `json:"content"`
}

type generateResponse struct {
	Candidates []generateCandidate `json:"candidates"`
}

// wireStage mirrors PipelineStage with a string timestamp, since generated
// timestamps are frequently not valid RFC3339
type wireStage struct {
	ID        string   `json:"id"`
	AgentName string   `json:"agentName"`
	Role      string   `json:"role"`
	Status    string   `json:"status"`
	Logs      []string `json:"logs"`
	Timestamp string   `json:"timestamp"`
}

type tracePayload struct {
	PipelineTrace []wireStage `json:"pipelineTrace"`
}

// GenerateTrace asks the model to narrate the pipeline execution for an
// already-decided verdict
func (c *Client) GenerateTrace(ctx context.Context, descriptor entities.ProviderDescriptor, core entities.VerdictCore) ([]entities.PipelineStage, error) {
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": buildTracePrompt(descriptor, core)}}},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.4,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("gemini request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("gemini request failed with status %d", resp.StatusCode), nil,
		)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewExternalError("failed to decode gemini response", err)
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return nil, apperrors.NewExternalError("gemini response missing output text", nil)
	}

	parsed, err := parseTracePayload(text)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to parse generated trace", err)
	}
	return parsed, nil
}

// parseTracePayload extracts pipeline stages from generated text, stripping
// Markdown code fences if present
func parseTracePayload(text string) ([]entities.PipelineStage, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	var payload tracePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("generated trace is not valid JSON: %w", err)
	}

	stages := make([]entities.PipelineStage, 0, len(payload.PipelineTrace))
	for _, ws := range payload.PipelineTrace {
		stage := entities.PipelineStage{
			ID:        ws.ID,
			AgentName: ws.AgentName,
			Role:      ws.Role,
			Status:    entities.StageStatus(ws.Status),
			Logs:      ws.Logs,
		}
		// Generated timestamps are best-effort; the assembler fills gaps
		if ts, err := time.Parse(time.RFC3339, ws.Timestamp); err == nil {
			stage.Timestamp = ts
		}
		stages = append(stages, stage)
	}
	return stages, nil
}
