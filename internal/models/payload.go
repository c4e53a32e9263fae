package models

import "fmt"

// BehavioralData is the raw telemetry blob captured by the game client for a
// single session. Every field is optional; empty lists and zero counts are the
// normal case for short or interrupted sessions and are handled downstream
// with neutral defaults. Times are milliseconds.
type BehavioralData struct {
	ReactionTimes    []float64            `json:"reactionTimes"`
	TotalClicks      int                  `json:"totalClicks"`
	Mistakes         int                  `json:"mistakes"`
	HesitationTimes  []float64            `json:"hesitationTimes"`
	EmotionalChoices EmotionalChoiceTally `json:"emotionalChoices"`
	DecisionTimes    []float64            `json:"decisionTimes,omitempty"`

	// A nil slice means the client did not track emotional state at all;
	// an empty non-nil slice means it tracked and observed no transitions.
	EmotionalStateChanges []EmotionalStateChange `json:"emotionalStateChanges,omitempty"`
}

// EmotionalChoiceTally counts choices by valence.
type EmotionalChoiceTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of emotional choices recorded.
func (t EmotionalChoiceTally) Total() int {
	return t.Positive + t.Negative + t.Neutral
}

// EmotionalStateChange is one recorded transition between self-reported
// emotional states during gameplay.
type EmotionalStateChange struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Timestamp float64 `json:"timestamp"`
}

// ValidationError reports telemetry that cannot be analyzed. Callers decide
// whether to drop the session or retry with sanitized input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid behavioral data: %s %s", e.Field, e.Reason)
}

// Validate rejects malformed telemetry. Sparse or empty telemetry is valid;
// negative counts, negative durations and non-positive reaction times are
// errors.
func (d *BehavioralData) Validate() error {
	if d.TotalClicks < 0 {
		return &ValidationError{Field: "totalClicks", Reason: "must not be negative"}
	}
	if d.Mistakes < 0 {
		return &ValidationError{Field: "mistakes", Reason: "must not be negative"}
	}
	if d.EmotionalChoices.Positive < 0 || d.EmotionalChoices.Negative < 0 || d.EmotionalChoices.Neutral < 0 {
		return &ValidationError{Field: "emotionalChoices", Reason: "counts must not be negative"}
	}
	// Reaction times are elapsed milliseconds; zero would mean an instant
	// response and poisons every mean-relative statistic downstream.
	for _, rt := range d.ReactionTimes {
		if rt <= 0 {
			return &ValidationError{Field: "reactionTimes", Reason: "must contain only positive values"}
		}
	}
	for _, h := range d.HesitationTimes {
		if h < 0 {
			return &ValidationError{Field: "hesitationTimes", Reason: "must not contain negative values"}
		}
	}
	for _, dt := range d.DecisionTimes {
		if dt < 0 {
			return &ValidationError{Field: "decisionTimes", Reason: "must not contain negative values"}
		}
	}
	return nil
}
