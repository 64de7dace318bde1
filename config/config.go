// Package config carries the one externally tunable parameter
// (max_bubble_length) plus the fixed algorithm constants the bulge and
// loop passes use, following a hardcoded-defaults-with-named-fields
// idiom.
package config

import (
	"log"

	"github.com/eernst/Flye/internal"
)

// Fixed algorithm constants for the bulge and loop collapse passes.
// These are not exposed as configuration: they are pinned behavior of
// the algorithm itself, not tuning knobs a caller can set.
const (
	// MaxCoverageVariance bounds how much a bulge's combined branch
	// coverage may exceed its entrance/exit coverage.
	MaxCoverageVariance = 1.5

	// LoopCoverageMultiplier is the analogous bound for loop collapse.
	LoopCoverageMultiplier = 1.5

	// LoopRemoveCoverageFraction: a loop whose coverage is below this
	// fraction of (entrance+exit) coverage is removed rather than
	// unrolled.
	LoopRemoveCoverageFraction = 0.25
)

// MaxBubbleLengthKey is the configuration key for the bubble length cap.
const MaxBubbleLengthKey = "max_bubble_length"

// DefaultMaxBubbleLength is used when no value is supplied.
const DefaultMaxBubbleLength = 50000

// Config holds the tunables the passes read; only the bulge pass uses
// MaxBubbleLength.
type Config struct {
	// MaxBubbleLength rejects any bulge whose longer branch exceeds it.
	MaxBubbleLength int
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{MaxBubbleLength: DefaultMaxBubbleLength}
}

// FromMap populates a Config from string-keyed configuration, a
// key-lookup shape matching a simple Config::get("max_bubble_length")
// style. A missing key falls back to the default; a malformed value is
// a fatal, upstream-configuration-bug panic, not a recoverable error.
func FromMap(m map[string]string) Config {
	cfg := Default()
	if v, ok := m[MaxBubbleLengthKey]; ok {
		n := internal.ParseInt(v, 10, 64)
		if n <= 0 {
			log.Panicf("config: %s must be positive, got %d", MaxBubbleLengthKey, n)
		}
		cfg.MaxBubbleLength = int(n)
	}
	return cfg
}
