package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"techplug_back_end/internal/config"
)

const (
	AnalysisUnavailable = "AI Analysis Unavailable: No API Key provided."
	AnalysisFailed      = "Error generating analysis. Please try again later."
	AnalysisEmpty       = "No analysis could be generated."
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TicketAnalyzer drafts a technician's analysis of a service request. It never
// fails: every problem degrades to one of the Analysis* sentinels.
type TicketAnalyzer struct {
	gen    Generator
	logger *zap.Logger
}

// NewTicketAnalyzer uses Gemini when an API key is configured.
func NewTicketAnalyzer(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) *TicketAnalyzer {
	if cfg.APIKey == "" {
		return &TicketAnalyzer{logger: logger}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("gemini client", zap.Error(err))
		return &TicketAnalyzer{gen: failing{err}, logger: logger}
	}
	return &TicketAnalyzer{gen: &gemini{client: client, model: cfg.Model}, logger: logger}
}

func NewTicketAnalyzerWith(gen Generator, logger *zap.Logger) *TicketAnalyzer {
	return &TicketAnalyzer{gen: gen, logger: logger}
}

func (a *TicketAnalyzer) GenerateAnalysis(ctx context.Context, description, serviceType string) string {
	if a.gen == nil {
		return AnalysisUnavailable
	}
	text, err := a.gen.Generate(ctx, AnalysisPrompt(description, serviceType))
	if err != nil {
		a.logger.Warn("ticket analysis failed", zap.String("service_type", serviceType), zap.Error(err))
		return AnalysisFailed
	}
	if strings.TrimSpace(text) == "" {
		return AnalysisEmpty
	}
	return text
}

func AnalysisPrompt(description, serviceType string) string {
	return fmt.Sprintf(`You are a senior IT technician at TechPlug.
Analyze the following customer service request.

Service Type: %s
Description: %q

Please provide:
1. Likely technical cause.
2. Recommended immediate steps or tools needed for the repair.
3. A polite short response draft to the customer acknowledging the issue.

Keep the output concise and structured.`, serviceType, description)
}

type gemini struct {
	client *genai.Client
	model  string
}

func (g *gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

type failing struct{ err error }

func (f failing) Generate(context.Context, string) (string, error) { return "", f.err }
