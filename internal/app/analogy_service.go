package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"analogygen/internal/ai"
	"analogygen/internal/model"
)

var ErrConceptEmpty = errors.New("concept must not be empty")

const analogySystemPrompt = `You are an expert teacher. For any technical concept provided, output ONLY a valid JSON object
with these exact keys:
- tagline: (string) a 1-line analogy
- analogy: (string) 2-5 sentence explanation
- mapping: (array of objects) each object MUST have:
    - technical: (string) the technical term
    - real_world: (string) the corresponding real-world analogy
- limitations: (array of strings) caveats or limitations of the analogy
Return ONLY valid JSON. Do NOT include explanations, markdown, or code fences.`

const quizPromptTemplate = `You are an expert teacher. Based on this concept and analogy, generate 5 multiple-choice questions.
Each question must have exactly 4 options and 1 correct answer.
Return ONLY JSON in this format:
{
  "concept": %q,
  "questions": [
    {
      "question": "Question text",
      "options": ["Option1", "Option2", "Option3", "Option4"],
      "answer": "CorrectOption"
    }
  ]
}
Analogy Data: %s`

// HistoryStore is the slice of the history repository the generator writes to.
type HistoryStore interface {
	Create(entry *model.HistoryEntry) error
}

// EventPublisher enqueues generation audit events for async persistence.
type EventPublisher interface {
	Publish(ctx context.Context, event model.GenerationEvent) error
}

// Completer abstracts the chat-completions client.
type Completer interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
}

type AnalogyService struct {
	history     HistoryStore
	cache       HistoryCache
	events      EventPublisher
	llm         Completer
	llmConfig   ai.ChatConfig
	callTimeout time.Duration
}

type GenerateResult struct {
	EntryID  string        `json:"entry_id"`
	Concept  string        `json:"concept"`
	Level    string        `json:"level"`
	User     string        `json:"user"`
	Result   AnalogyResult `json:"result"`
	Quiz     Quiz          `json:"quiz"`
	Degraded bool          `json:"degraded"`
}

func NewAnalogyService(
	history HistoryStore,
	cache HistoryCache,
	events EventPublisher,
	llm Completer,
	llmConfig ai.ChatConfig,
	callTimeout time.Duration,
) *AnalogyService {
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}
	return &AnalogyService{
		history:     history,
		cache:       cache,
		events:      events,
		llm:         llm,
		llmConfig:   llmConfig,
		callTimeout: callTimeout,
	}
}

// Generate asks the model for an analogy and a quiz, persists the pair as a
// history entry owned by email, and returns the normalized payload. LLM
// output that fails to parse degrades instead of failing the request;
// transport and storage failures propagate to the caller.
func (s *AnalogyService) Generate(ctx context.Context, email, concept, level string) (*GenerateResult, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return nil, ErrConceptEmpty
	}

	started := time.Now()

	raw, err := s.complete(ctx, []ai.ChatMessage{
		{Role: "system", Content: analogySystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Concept: %s\nLevel: %s", concept, level)},
	})
	if err != nil {
		return nil, err
	}
	outcome := ParseAnalogyOutput(raw)

	quiz, err := s.BuildQuiz(ctx, concept, outcome.Result)
	if err != nil {
		return nil, err
	}

	resultJSON, err := json.Marshal(outcome.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal analogy result failed: %w", err)
	}
	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz failed: %w", err)
	}

	entry := &model.HistoryEntry{
		ID:         uuid.NewString(),
		OwnerEmail: email,
		Concept:    concept,
		Level:      level,
		Result:     datatypes.JSON(resultJSON),
		Quiz:       datatypes.JSON(quizJSON),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.history.Create(entry); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.MarkDirty(ctx, email)
		_ = s.cache.DeleteHistory(ctx, email)
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, model.GenerationEvent{
			OwnerEmail: email,
			Concept:    concept,
			Level:      level,
			Degraded:   outcome.Degraded,
			DurationMs: time.Since(started).Milliseconds(),
			CreatedAt:  time.Now().UTC(),
		})
	}

	return &GenerateResult{
		EntryID:  entry.ID,
		Concept:  concept,
		Level:    level,
		User:     email,
		Result:   outcome.Result,
		Quiz:     quiz,
		Degraded: outcome.Degraded,
	}, nil
}

// BuildQuiz generates a multiple-choice quiz from a concept and an analogy
// result. Unparseable model output yields an empty question list.
func (s *AnalogyService) BuildQuiz(ctx context.Context, concept string, result AnalogyResult) (Quiz, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return Quiz{}, ErrConceptEmpty
	}

	analogyJSON, err := json.Marshal(result)
	if err != nil {
		return Quiz{}, fmt.Errorf("marshal analogy data failed: %w", err)
	}

	raw, err := s.complete(ctx, []ai.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(quizPromptTemplate, concept, analogyJSON)},
	})
	if err != nil {
		return Quiz{}, err
	}
	return ParseQuizOutput(concept, raw), nil
}

func (s *AnalogyService) complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.llm.Complete(callCtx, s.llmConfig, messages)
}
