// Package report produces the downloadable symptom analysis: a structured
// condition analysis from the language model rendered as a PDF.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"

	"github.com/aarogyahealth/triage-platform/internal/observability/metrics"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// PatientData is the session snapshot the analysis is based on.
type PatientData struct {
	Name     string
	Age      int
	Contact  string
	Gender   string
	Symptoms string
	Severity string
}

// Medicine is one recommended medicine entry.
type Medicine struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Notes  string `json:"notes"`
}

// Analysis is the structured output the model is asked to produce.
type Analysis struct {
	Gender               string     `json:"gender"`
	PredictedDisease     string     `json:"predicted_disease"`
	Description          string     `json:"description"`
	RecommendedMedicines []Medicine `json:"recommended_medicines"`
	SuggestedDiet        []string   `json:"suggested_diet"`
	WorkoutExercise      []string   `json:"workout_exercise"`
}

// TextGenerator produces a single completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements TextGenerator against Google's Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	modelID string
	timeout time.Duration
}

// NewGeminiGenerator creates a Gemini-backed generator. timeout bounds each
// generation call; zero or negative means 30 seconds.
func NewGeminiGenerator(ctx context.Context, apiKey, modelID string, timeout time.Duration) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("report: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("report: failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, modelID: modelID, timeout: timeout}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.GenerativeModel(g.modelID).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("report: gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("report: gemini returned no content")
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String(), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Service turns patient data into a structured analysis.
type Service struct {
	llm     TextGenerator
	metrics *metrics.TriageMetrics
	logger  *logging.Logger
	tracer  trace.Tracer
}

// NewService creates the analysis service.
func NewService(llm TextGenerator, m *metrics.TriageMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		llm:     llm,
		metrics: m,
		logger:  logger.Component("report"),
		tracer:  otel.Tracer("triage.internal.report"),
	}
}

// Analyze asks the model for the structured report. It never fails: every
// parse or transport failure degrades to a minimal canned analysis built
// from the patient data alone.
func (s *Service) Analyze(ctx context.Context, data PatientData) Analysis {
	ctx, span := s.tracer.Start(ctx, "report.analyze")
	defer span.End()

	start := time.Now()
	raw, err := s.llm.Generate(ctx, buildPrompt(data))
	s.metrics.ObserveLLMLatency("report", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		s.logger.Error("analysis generation failed", "error", err)
		return fallbackAnalysis(data)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("analysis did not parse, using fallback", "error", err)
		return fallbackAnalysis(data)
	}
	if analysis.Gender == "" {
		analysis.Gender = orUnspecified(data.Gender)
	}
	if analysis.PredictedDisease == "" {
		analysis.PredictedDisease = "Undetermined"
	}
	return analysis
}

func buildPrompt(data PatientData) string {
	severity := data.Severity
	if severity == "" {
		severity = "not provided"
	}
	return fmt.Sprintf(`You are a medical report generator. Based strictly on the provided input, generate a structured health report.

Rules:
1. If severity is provided, consider BOTH symptoms and severity while predicting disease, medicines, diet, etc.
2. If severity is not provided, base the outcome ONLY on the symptoms.
3. Always return the output in the following JSON structure:

{
  "gender": "string",
  "predicted_disease": "string",
  "description": "medical description based on symptoms (and severity if provided)",
  "recommended_medicines": [
    {"name": "medicine name", "dosage": "dosage details", "notes": "special notes"}
  ],
  "suggested_diet": ["diet recommendation 1", "diet recommendation 2"],
  "workout_exercise": ["exercise recommendation 1", "exercise recommendation 2"]
}

Formatting Rules:
- "recommended_medicines" must always be a list of objects with clear "name", "dosage", and "notes".
- "suggested_diet" and "workout_exercise" must be lists of bullet-point style strings.
- Keep explanations short, symptom-specific, and avoid generic medical advice.
- Do NOT return free text, only valid JSON (no markdown, no code fences).

Patient context (use ONLY this information):
- Gender: %s
- Reported symptoms: %s
- Severity: %s`, orUnspecified(data.Gender), data.Symptoms, severity)
}

// parseAnalysis tolerates the two ways models wrap JSON: code fences and
// prose around the object. Anything else falls through as an error.
func parseAnalysis(raw string) (Analysis, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.Trim(text, "`\n")
		if _, rest, found := strings.Cut(text, "\n"); found {
			text = rest
		}
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err == nil {
		return analysis, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return Analysis{}, errors.New("report: no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("report: failed to decode model output: %w", err)
	}
	return analysis, nil
}

func fallbackAnalysis(data PatientData) Analysis {
	return Analysis{
		Gender:           orUnspecified(data.Gender),
		PredictedDisease: "Undetermined",
		Description:      "Insufficient information to provide a detailed description.",
	}
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unspecified"
	}
	return s
}
