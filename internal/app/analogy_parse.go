package app

import (
	"encoding/json"
	"strings"
)

type AnalogyMapping struct {
	Technical string `json:"technical"`
	RealWorld string `json:"real_world"`
}

type AnalogyResult struct {
	Tagline     string           `json:"tagline"`
	Analogy     string           `json:"analogy"`
	Mapping     []AnalogyMapping `json:"mapping"`
	Limitations []string         `json:"limitations"`
}

// AnalogyOutcome is either a parsed result or a degraded fallback built from
// model output that was not valid JSON. Degraded outcomes keep the raw text
// in RawText and carry it in the analogy field so the caller still gets a
// usable response.
type AnalogyOutcome struct {
	Result   AnalogyResult
	Degraded bool
	RawText  string
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type Quiz struct {
	Concept   string         `json:"concept"`
	Questions []QuizQuestion `json:"questions"`
}

// StripCodeFence removes a surrounding ``` fence when the model wrapped its
// JSON in a markdown code block despite being told not to.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

// ParseAnalogyOutput normalizes raw model output into an AnalogyOutcome.
// Parse failure is expected and non-fatal.
func ParseAnalogyOutput(raw string) AnalogyOutcome {
	text := StripCodeFence(raw)

	var result AnalogyResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return AnalogyOutcome{
			Result:   AnalogyResult{Analogy: text, Mapping: []AnalogyMapping{}, Limitations: []string{}},
			Degraded: true,
			RawText:  text,
		}
	}
	if result.Mapping == nil {
		result.Mapping = []AnalogyMapping{}
	}
	if result.Limitations == nil {
		result.Limitations = []string{}
	}
	return AnalogyOutcome{Result: result}
}

// ParseQuizOutput normalizes raw model output into a Quiz, falling back to an
// empty question list when the output is not valid JSON.
func ParseQuizOutput(concept, raw string) Quiz {
	text := StripCodeFence(raw)

	var quiz Quiz
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return Quiz{Concept: concept, Questions: []QuizQuestion{}}
	}
	if quiz.Concept == "" {
		quiz.Concept = concept
	}
	if quiz.Questions == nil {
		quiz.Questions = []QuizQuestion{}
	}
	return quiz
}
