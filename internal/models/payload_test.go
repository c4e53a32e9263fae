package models

import (
	"encoding/json"
	"testing"
)

func TestBehavioralData_Validate(t *testing.T) {
	cases := []struct {
		name      string
		data      BehavioralData
		wantField string
	}{
		{"empty payload is valid", BehavioralData{}, ""},
		{"full payload is valid", BehavioralData{
			ReactionTimes:    []float64{500, 600},
			TotalClicks:      10,
			Mistakes:         2,
			HesitationTimes:  []float64{1100},
			EmotionalChoices: EmotionalChoiceTally{Positive: 3, Negative: 2, Neutral: 1},
			DecisionTimes:    []float64{1500},
		}, ""},
		{"negative clicks", BehavioralData{TotalClicks: -1}, "totalClicks"},
		{"negative mistakes", BehavioralData{Mistakes: -1}, "mistakes"},
		{"negative choice count", BehavioralData{EmotionalChoices: EmotionalChoiceTally{Neutral: -3}}, "emotionalChoices"},
		{"negative reaction time", BehavioralData{ReactionTimes: []float64{100, -1}}, "reactionTimes"},
		{"zero reaction time", BehavioralData{ReactionTimes: []float64{100, 0}, TotalClicks: 2}, "reactionTimes"},
		{"negative hesitation", BehavioralData{HesitationTimes: []float64{-500}}, "hesitationTimes"},
		{"negative decision time", BehavioralData{DecisionTimes: []float64{-1}}, "decisionTimes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.data.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tc.wantField)
			}
		})
	}
}

func TestEmotionalChoiceTally_Total(t *testing.T) {
	tally := EmotionalChoiceTally{Positive: 3, Negative: 2, Neutral: 5}
	if got := tally.Total(); got != 10 {
		t.Errorf("total = %d, want 10", got)
	}
}

// The client sends camelCase telemetry; absent emotionalStateChanges must
// decode as nil so the analyzer can tell "not tracked" from "no transitions".
func TestBehavioralData_DecodeStateChangePresence(t *testing.T) {
	var untracked BehavioralData
	if err := json.Unmarshal([]byte(`{"totalClicks": 5}`), &untracked); err != nil {
		t.Fatal(err)
	}
	if untracked.EmotionalStateChanges != nil {
		t.Error("absent field must decode as nil")
	}

	var tracked BehavioralData
	if err := json.Unmarshal([]byte(`{"totalClicks": 5, "emotionalStateChanges": []}`), &tracked); err != nil {
		t.Fatal(err)
	}
	if tracked.EmotionalStateChanges == nil {
		t.Error("empty array must decode as a non-nil empty slice")
	}
}
