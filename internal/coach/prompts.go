package coach

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

type Insight struct {
	Title      string   `json:"title"`
	Advice     string   `json:"advice"`
	Confidence float64  `json:"confidence"`
	Tags       []string `json:"tags"`
}

type Prediction struct {
	ProjectedLevel        int     `json:"projectedLevel"`
	SuccessProbability    float64 `json:"successProbability"` // 0-100
	NextMilestoneEstimate string  `json:"nextMilestoneEstimate"`
	Summary               string  `json:"summary"`
}

// Suggestion is a habit proposed for a free-text goal.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Color       string `json:"color"`
}

var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":      {Type: genai.TypeString},
		"advice":     {Type: genai.TypeString},
		"confidence": {Type: genai.TypeNumber},
		"tags":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "advice", "confidence", "tags"},
}

var predictionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"projectedLevel":        {Type: genai.TypeInteger},
		"successProbability":    {Type: genai.TypeNumber},
		"nextMilestoneEstimate": {Type: genai.TypeString},
		"summary":               {Type: genai.TypeString},
	},
	Required: []string{"projectedLevel", "successProbability", "nextMilestoneEstimate", "summary"},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":        {Type: genai.TypeString},
		"description": {Type: genai.TypeString},
		"category":    {Type: genai.TypeString},
		"color":       {Type: genai.TypeString},
	},
	Required: []string{"name", "description", "category", "color"},
}

func insightPrompt(summaries []engine.HabitSummary) string {
	return "Analyze these habits and provide a ruthless, tactical military-style insight. Be concise. Data: " + mustJSON(summaries)
}

type predictionHistory struct {
	Name      string `json:"name"`
	Streak    int    `json:"streak"`
	Last7Days int    `json:"last7Days"`
}

func predictionPrompt(p storage.Profile, summaries []engine.HabitSummary) string {
	history := make([]predictionHistory, 0, len(summaries))
	for _, s := range summaries {
		history = append(history, predictionHistory{Name: s.Name, Streak: s.Streak, Last7Days: s.Last7Days})
	}
	data := struct {
		User    storage.Profile     `json:"user"`
		History []predictionHistory `json:"history"`
	}{p, history}
	return "Predict user progress in 30 days based on data. Use futuristic terms like 'Sync Rate', 'Optimization'. Data: " + mustJSON(data)
}

func mentorPrompt(p storage.Profile, summaries []engine.HabitSummary) string {
	type streak struct {
		Name   string `json:"name"`
		Streak int    `json:"streak"`
	}
	habits := make([]streak, 0, len(summaries))
	for _, s := range summaries {
		habits = append(habits, streak{Name: s.Name, Streak: s.Streak})
	}
	data := struct {
		UserName string   `json:"userName"`
		Habits   []streak `json:"habits"`
	}{p.Name, habits}
	return "You are a futuristic AI commander. Speak in short, cryptic, motivating bursts. Max 15 words. Context: " + mustJSON(data) + "."
}

func suggestionPrompt(goal string) string {
	return fmt.Sprintf(`Goal: %q.
NAME RULE: Use the EXACT word provided (e.g. "Running"). NO FLUFF.
Return JSON. Color should be a hex code for a neon/tech color.`, goal)
}

func askPrompt(query string, extra any) string {
	return fmt.Sprintf("You are Aura, a futuristic AI assistant. Answer this query with logic and precision. Keep it concise. Query: %q. Context: %s", query, mustJSON(extra))
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// decodeJSON parses a model reply, tolerating a surrounding markdown fence.
func decodeJSON[T any](text string) (T, error) {
	var out T
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	if i, j := strings.Index(s, "{"), strings.LastIndex(s, "}"); i > 0 && j > i {
		s = s[i : j+1]
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return out, fmt.Errorf("parse coach reply: %w", err)
	}
	return out, nil
}
