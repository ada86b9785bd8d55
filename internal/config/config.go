package config

import (
	"os"
	"strconv"
)

// Performance threshold defaults. Overridable via environment.
const (
	DefaultAmountThreshold    = 500.0
	DefaultRecentWindowDays   = 30
	DefaultStaleWindowDays    = 60
	DefaultFrequencyThreshold = 3
)

// Thresholds configures the performance classifier. It is resolved once
// at startup and passed in explicitly, so classification never depends
// on process-wide state at call time.
type Thresholds struct {
	// AmountThreshold is the minimum windowed order value for a lead to
	// count as well performing.
	AmountThreshold float64

	// RecentWindowDays bounds the "recent" window for well-performing
	// accounts: only completed orders newer than now minus this many
	// days participate.
	RecentWindowDays int

	// StaleWindowDays bounds the "stale" window for under-performing
	// accounts: only completed orders older than now minus this many
	// days participate.
	StaleWindowDays int

	// FrequencyThreshold is the minimum windowed order count for a lead
	// to count as well performing.
	FrequencyThreshold int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AmountThreshold:    DefaultAmountThreshold,
		RecentWindowDays:   DefaultRecentWindowDays,
		StaleWindowDays:    DefaultStaleWindowDays,
		FrequencyThreshold: DefaultFrequencyThreshold,
	}
}

// ThresholdsFromEnv reads THRESHOLD_AMOUNT, THRESHOLD_DAYS,
// UNDERPERFORMING_DAYS and FREQUENCY_THRESHOLD, falling back to the
// defaults for anything unset or unparsable.
func ThresholdsFromEnv() Thresholds {
	t := DefaultThresholds()
	t.AmountThreshold = envFloat("THRESHOLD_AMOUNT", t.AmountThreshold)
	t.RecentWindowDays = envInt("THRESHOLD_DAYS", t.RecentWindowDays)
	t.StaleWindowDays = envInt("UNDERPERFORMING_DAYS", t.StaleWindowDays)
	t.FrequencyThreshold = envInt("FREQUENCY_THRESHOLD", t.FrequencyThreshold)
	return t
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
