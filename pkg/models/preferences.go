package models

import "time"

// PersonalizationWeights are the preference vectors a feed ranker consumes
type PersonalizationWeights struct {
	UserID            string                 `json:"userId"`
	TopicWeights      map[string]float64     `json:"topicWeights"`
	CategoryWeights   map[Category]float64   `json:"categoryWeights"`
	DifficultyWeights map[Difficulty]float64 `json:"difficultyWeights"`
	CardTypeWeights   map[CardType]float64   `json:"cardTypeWeights"`
	NoveltyRatio      float64                `json:"noveltyRatio"` // 0-1
	LastUpdated       time.Time              `json:"lastUpdated"`
}

// Clone returns a deep copy of the weights
func (w PersonalizationWeights) Clone() PersonalizationWeights {
	out := w
	out.TopicWeights = make(map[string]float64, len(w.TopicWeights))
	for k, v := range w.TopicWeights {
		out.TopicWeights[k] = v
	}
	out.CategoryWeights = make(map[Category]float64, len(w.CategoryWeights))
	for k, v := range w.CategoryWeights {
		out.CategoryWeights[k] = v
	}
	out.DifficultyWeights = make(map[Difficulty]float64, len(w.DifficultyWeights))
	for k, v := range w.DifficultyWeights {
		out.DifficultyWeights[k] = v
	}
	out.CardTypeWeights = make(map[CardType]float64, len(w.CardTypeWeights))
	for k, v := range w.CardTypeWeights {
		out.CardTypeWeights[k] = v
	}
	return out
}
