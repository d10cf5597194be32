package models

// Dimension is one axis of the model comparison chart, scored 0-10.
type Dimension struct {
	Name   string
	Scores map[string]float64
}

// Comparison holds relative scores for every catalog model.
var Comparison = []Dimension{
	{
		Name: "Reasoning",
		Scores: map[string]float64{
			"gpt-3.5-turbo": 7.0, "gpt-4": 8.5, "gpt-4-turbo": 9.0, "gpt-4o": 9.2,
			"o1": 9.5, "o1-mini": 8.0, "o3-mini": 7.5, "o3-mini-high": 8.2,
			"claude-3-opus": 9.8, "claude-3-sonnet": 9.3, "claude-3-haiku": 8.0,
			"pplx-7b-online": 7.5, "pplx-70b-online": 8.8,
			"gemini-pro": 8.7, "gemini-ultra": 9.4,
			"copilot": 8.5,
		},
	},
	{
		Name: "Speed",
		Scores: map[string]float64{
			"gpt-3.5-turbo": 9.0, "gpt-4": 7.5, "gpt-4-turbo": 8.0, "gpt-4o": 8.5,
			"o1": 7.0, "o1-mini": 8.8, "o3-mini": 9.0, "o3-mini-high": 8.5,
			"claude-3-opus": 7.0, "claude-3-sonnet": 8.0, "claude-3-haiku": 9.2,
			"pplx-7b-online": 9.0, "pplx-70b-online": 8.0,
			"gemini-pro": 8.5, "gemini-ultra": 7.5,
			"copilot": 9.5,
		},
	},
	{
		Name: "Context Window",
		Scores: map[string]float64{
			"gpt-3.5-turbo": 6.0, "gpt-4": 7.5, "gpt-4-turbo": 9.0, "gpt-4o": 8.5,
			"o1": 9.0, "o1-mini": 7.0, "o3-mini": 6.5, "o3-mini-high": 7.0,
			"claude-3-opus": 10.0, "claude-3-sonnet": 9.5, "claude-3-haiku": 8.0,
			"pplx-7b-online": 7.0, "pplx-70b-online": 8.5,
			"gemini-pro": 8.0, "gemini-ultra": 9.0,
			"copilot": 7.5,
		},
	},
	{
		Name: "Accuracy",
		Scores: map[string]float64{
			"gpt-3.5-turbo": 7.5, "gpt-4": 9.0, "gpt-4-turbo": 9.2, "gpt-4o": 9.3,
			"o1": 9.5, "o1-mini": 8.5, "o3-mini": 8.0, "o3-mini-high": 8.7,
			"claude-3-opus": 9.8, "claude-3-sonnet": 9.4, "claude-3-haiku": 8.5,
			"pplx-7b-online": 8.0, "pplx-70b-online": 9.0,
			"gemini-pro": 9.0, "gemini-ultra": 9.5,
			"copilot": 9.2,
		},
	},
	{
		Name: "Cost Efficiency",
		Scores: map[string]float64{
			"gpt-3.5-turbo": 9.5, "gpt-4": 7.0, "gpt-4-turbo": 7.5, "gpt-4o": 7.0,
			"o1": 6.5, "o1-mini": 8.5, "o3-mini": 9.0, "o3-mini-high": 8.0,
			"claude-3-opus": 6.0, "claude-3-sonnet": 7.5, "claude-3-haiku": 9.0,
			"pplx-7b-online": 8.5, "pplx-70b-online": 7.5,
			"gemini-pro": 8.5, "gemini-ultra": 7.0,
			"copilot": 8.0,
		},
	},
}

// Scores returns the model's score on every dimension, keyed by dimension name.
func Scores(id string) map[string]float64 {
	id = normalizeID(id)
	out := make(map[string]float64, len(Comparison))
	for _, d := range Comparison {
		if s, ok := d.Scores[id]; ok {
			out[d.Name] = s
		}
	}
	return out
}

// Average returns the mean score across dimensions, or 0 when unscored.
func Average(id string) float64 {
	scores := Scores(id)
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
