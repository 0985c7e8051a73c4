package intake

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/aarogyahealth/triage-platform/internal/doctors"
	"github.com/aarogyahealth/triage-platform/internal/observability/metrics"
	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Conversation roles stored in session turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// WelcomeMessage opens every fresh conversation.
const WelcomeMessage = "👋 Hello! I'm your AI Medical Assistant. I'm here to help analyze your symptoms. Please describe how you're feeling."

// fallbackReply is returned verbatim whenever the model call fails; the
// conversation must never surface a raw error to the patient.
const fallbackReply = "I apologize for the technical difficulties. Please try again."

// systemPrompt scripts the triage interview. The labeled summary block at
// the end of the model's final reply is what the detail extractor parses.
const systemPrompt = `You are a careful medical triage assistant for Aarogya Health.
Interview the patient about their symptoms one or two questions at a time:
onset, duration, severity, and related symptoms. Never diagnose with
certainty and never prescribe medication. When you have enough detail,
close your reply with exactly these labeled lines:

Primary symptoms: <comma separated>
Additional symptoms: <comma separated or None>
Duration: <how long>
Recommended specialist: <one specialist type>

and advise the patient to book a consultation.`

// SymptomDetails is what the extractor pulls out of a completed interview.
type SymptomDetails struct {
	PrimarySymptoms    string `json:"primary_symptoms,omitempty"`
	AdditionalSymptoms string `json:"additional_symptoms,omitempty"`
	Duration           string `json:"duration,omitempty"`
	Specialist         string `json:"recommended_specialist,omitempty"`
}

// ReplyResult is one assistant turn plus the booking signal.
type ReplyResult struct {
	Message     string         `json:"message"`
	ShowBooking bool           `json:"show_booking"`
	Details     SymptomDetails `json:"symptom_details"`
}

// Service advances a session's conversation by one exchange.
type Service struct {
	llm     LLMClient
	metrics *metrics.TriageMetrics
	logger  *logging.Logger
	tracer  trace.Tracer
}

// NewService creates the intake service.
func NewService(llm LLMClient, m *metrics.TriageMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		llm:     llm,
		metrics: m,
		logger:  logger.Component("intake"),
		tracer:  otel.Tracer("triage.internal.intake"),
	}
}

// Reply appends the patient's message, obtains the assistant's answer and
// updates the session's symptom fields in place. The caller persists the
// session afterwards.
func (s *Service) Reply(ctx context.Context, sess *sessions.Session, message string) ReplyResult {
	ctx, span := s.tracer.Start(ctx, "intake.reply")
	defer span.End()

	if len(sess.Conversation) == 0 {
		sess.Conversation = append(sess.Conversation, sessions.Turn{Role: RoleAssistant, Text: WelcomeMessage})
	}

	start := time.Now()
	answer, err := s.llm.Complete(ctx, CompletionRequest{
		System:      systemPrompt,
		History:     sess.Conversation,
		Message:     message,
		Temperature: 0.4,
		MaxTokens:   1024,
	})
	s.metrics.ObserveLLMLatency("intake", time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		s.logger.Error("intake completion failed", "error", err, "session_id", sess.ID)
		sess.Conversation = append(sess.Conversation,
			sessions.Turn{Role: RoleUser, Text: message},
			sessions.Turn{Role: RoleAssistant, Text: fallbackReply},
		)
		return ReplyResult{Message: fallbackReply}
	}

	sess.Conversation = append(sess.Conversation,
		sessions.Turn{Role: RoleUser, Text: message},
		sessions.Turn{Role: RoleAssistant, Text: answer},
	)

	result := ReplyResult{Message: answer}
	details, complete := extractDetails(answer)
	if complete || mentionsBooking(answer) {
		result.ShowBooking = true
		result.Details = details
		sess.SymptomSummary = answer
		sess.PrimarySymptoms = details.PrimarySymptoms
		sess.AdditionalSymptoms = details.AdditionalSymptoms
		sess.SymptomDuration = details.Duration
		sess.RecommendedSpecialist = details.Specialist
		if sess.RecommendedSpecialist == "" {
			sess.RecommendedSpecialist = doctors.MatchSpecialist(answer)
		}
		sess.ReadyToBook = true
	}
	return result
}

// extractDetails scans the labeled summary lines the system prompt asks
// for. complete is true once the primary symptoms line is present.
func extractDetails(reply string) (SymptomDetails, bool) {
	var d SymptomDetails
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*-• "))
		switch {
		case hasLabel(line, "Primary symptoms:"):
			d.PrimarySymptoms = labelValue(line)
		case hasLabel(line, "Additional symptoms:"):
			d.AdditionalSymptoms = labelValue(line)
		case hasLabel(line, "Duration:"):
			d.Duration = labelValue(line)
		case hasLabel(line, "Recommended specialist:"):
			d.Specialist = labelValue(line)
		}
	}
	return d, d.PrimarySymptoms != ""
}

func hasLabel(line, label string) bool {
	return len(line) >= len(label) && strings.EqualFold(line[:len(label)], label)
}

func labelValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.Trim(strings.TrimSpace(value), "*")
}

// mentionsBooking mirrors the keyword heuristic used when the model skips
// the labeled block but still points at a specialist.
func mentionsBooking(reply string) bool {
	lower := strings.ToLower(reply)
	for _, word := range []string{"recommend", "specialist", "book a consultation"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// SetGender records the patient's stated gender on the session. Only the
// two values the intake form offers are accepted.
func (s *Service) SetGender(ctx context.Context, sess *sessions.Session, gender string) bool {
	if gender != "Male" && gender != "Female" {
		return false
	}
	sess.Gender = gender
	return true
}
