package store

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/scenah/story-cli/model"
)

// durationPattern matches duration strings like "7d", "2w", "3m", "1y"
var durationPattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// ParseDuration parses a duration string like "7d", "2w", "3m", "1y".
// Returns the duration or an error if the format is invalid.
//
// Supported units:
//   - d: days
//   - w: weeks (7 days)
//   - m: months (30 days, approximation)
//   - y: years (365 days, approximation)
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("duration string is empty")
	}

	matches := durationPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration format: %s (expected format: <number><unit>, e.g., 7d, 2w, 3m, 1y)", s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil || num < 0 {
		return 0, fmt.Errorf("invalid number in duration: %s", matches[1])
	}

	var duration time.Duration
	switch matches[2] {
	case "d":
		duration = time.Duration(num) * 24 * time.Hour
	case "w":
		duration = time.Duration(num) * 7 * 24 * time.Hour
	case "m":
		duration = time.Duration(num) * 30 * 24 * time.Hour
	case "y":
		duration = time.Duration(num) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("invalid duration unit: %s (expected d, w, m, or y)", matches[2])
	}

	return duration, nil
}

// SinceDate converts a "since" duration string (e.g., "7d") to the earliest
// publish date (YYYY-MM-DD) that still falls inside the window.
func SinceDate(since string) (string, error) {
	duration, err := ParseDuration(since)
	if err != nil {
		return "", err
	}
	return model.DateOnly(time.Now().Add(-duration)), nil
}

// FilterSince keeps stories whose publish date is on or after cutoff
// (YYYY-MM-DD). Publish dates sort lexically, so plain string comparison is
// enough. Stories without a parseable publish date are kept.
func FilterSince(stories []model.Story, cutoff string) []model.Story {
	var kept []model.Story
	for _, st := range stories {
		if len(st.PublishDate) != len(cutoff) || st.PublishDate >= cutoff {
			kept = append(kept, st)
		}
	}
	return kept
}
