// Package insight turns the collected condition reports into a short
// strategic brief via the Gemini text API. The call is best-effort: any
// failure or unparseable response yields a fixed fallback brief, never an
// error to the caller.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/schoolpulse/backend/internal/metrics"
	"github.com/schoolpulse/backend/internal/report"
)

const DefaultModel = "gemini-2.0-flash"

type Insight struct {
	Summary            string   `json:"summary"`
	Priorities         []string `json:"priorities"`
	SuggestedResources []string `json:"suggestedResources"`
}

// Fallback is the brief substituted whenever generation fails.
func Fallback() Insight {
	return Insight{
		Summary:            "Strategic analysis unavailable at this moment.",
		Priorities:         []string{"Manual review required"},
		SuggestedResources: []string{"General Support"},
	}
}

// generateFunc produces raw model output for a prompt. Split out so tests can
// substitute the remote call.
type generateFunc func(ctx context.Context, prompt string) (string, error)

type Client struct {
	model    string
	generate generateFunc
	metrics  *metrics.Metrics
	log      *slog.Logger
}

type ClientConfig struct {
	APIKey  string
	Model   string
	Metrics *metrics.Metrics
	Log     *slog.Logger
}

func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("insight: client: %w", err)
	}

	c := &Client{
		model:   cfg.Model,
		metrics: cfg.Metrics,
		log:     cfg.Log.With("component", "insight"),
	}
	c.generate = func(ctx context.Context, prompt string) (string, error) {
		resp, err := gc.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   insightSchema(),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", fmt.Errorf("no candidates")
		}
		var sb strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			if p.Text != "" {
				sb.WriteString(p.Text)
			}
		}
		return sb.String(), nil
	}
	return c, nil
}

// Generate builds the brief for the given reports. It always returns a
// usable Insight; failures degrade to the fallback.
func (c *Client) Generate(ctx context.Context, reports []*report.Report) Insight {
	prompt := buildPrompt(reports)

	start := time.Now()
	raw, err := c.generate(ctx, prompt)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		c.log.Warn("insight generation failed, using fallback", "error", err)
		c.metrics.RecordInsightRequest(elapsed, true)
		return Fallback()
	}

	ins, ok := parseInsight(raw)
	if !ok {
		c.log.Warn("insight response unparseable, using fallback")
		c.metrics.RecordInsightRequest(elapsed, true)
		return Fallback()
	}

	c.metrics.RecordInsightRequest(elapsed, false)
	return ins
}

// buildPrompt renders the reports as a newline-delimited plain-text digest.
func buildPrompt(reports []*report.Report) string {
	var sb strings.Builder
	sb.WriteString("You are an education infrastructure analyst. ")
	sb.WriteString("Based on the school condition reports below, produce a strategic brief ")
	sb.WriteString("with a summary, ordered priorities, and suggested resource tags.\n\nReports:\n")
	for _, r := range reports {
		sb.WriteString(r.SchoolName)
		if r.Location != "" {
			sb.WriteString(" (")
			sb.WriteString(r.Location)
			sb.WriteString(")")
		}
		sb.WriteString(": ")
		sb.WriteString(r.Condition)
		sb.WriteString("\n")
	}
	return sb.String()
}

// parseInsight accepts only a complete, non-empty brief.
func parseInsight(raw string) (Insight, bool) {
	var ins Insight
	if err := json.Unmarshal([]byte(raw), &ins); err != nil {
		return Insight{}, false
	}
	if ins.Summary == "" || len(ins.Priorities) == 0 || len(ins.SuggestedResources) == 0 {
		return Insight{}, false
	}
	return ins, true
}

func insightSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"summary", "priorities", "suggestedResources"},
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString},
			"priorities": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"suggestedResources": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	}
}
