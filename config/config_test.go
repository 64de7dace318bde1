package config

import "testing"

func TestDefault(t *testing.T) {
	if Default().MaxBubbleLength != DefaultMaxBubbleLength {
		t.Error("Default() did not apply DefaultMaxBubbleLength")
	}
}

func TestFromMapOverride(t *testing.T) {
	cfg := FromMap(map[string]string{MaxBubbleLengthKey: "1000"})
	if cfg.MaxBubbleLength != 1000 {
		t.Errorf("expected 1000, got %d", cfg.MaxBubbleLength)
	}
}

func TestFromMapMissingFallsBackToDefault(t *testing.T) {
	cfg := FromMap(map[string]string{})
	if cfg.MaxBubbleLength != DefaultMaxBubbleLength {
		t.Error("expected default when key missing")
	}
}

func TestFromMapInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on non-integer max_bubble_length")
		}
	}()
	FromMap(map[string]string{MaxBubbleLengthKey: "not-a-number"})
}

func TestFromMapNonPositivePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on non-positive max_bubble_length")
		}
	}()
	FromMap(map[string]string{MaxBubbleLengthKey: "0"})
}
