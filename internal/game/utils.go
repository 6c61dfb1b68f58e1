package game

import (
	"fmt"
	"math"
	"time"
)

// budgetRatio maps a frame time onto [0, 1] of the frame budget.
func budgetRatio(d, budget time.Duration) float64 {
	if budget <= 0 {
		return 0
	}
	return clamp01(float64(d) / float64(budget))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatMicros formats a duration in microseconds with one decimal.
func formatMicros(d time.Duration) string {
	return fmt.Sprintf("%.1fµs", math.Round(float64(d)/float64(time.Microsecond)*10)/10)
}
