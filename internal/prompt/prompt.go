// Package prompt renders provider-ready instruction and context text from
// pantry, equipment, constraints, feedback and learned preferences. Every
// function here is deterministic: the same input always yields the same text.
package prompt

import (
	"fmt"
	"strings"
)

// Prompt versions are stored with each generation for later comparison.
const (
	VersionRecommendations = "v2"
	VersionChat            = "chat-v2"
	VersionPlan            = "plan-v1"
)

const (
	notSpecified  = "Not specified"
	noneSpecified = "None specified"
)

// Prompt is the system instruction plus the user context of one request
type Prompt struct {
	System string
	User   string
}

// FeedbackEntry is a past decision on a suggested meal
type FeedbackEntry struct {
	Title    string
	Decision string
}

func orDefault(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

func feedbackBlock(entries []FeedbackEntry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, len(entries))
	for i, f := range entries {
		lines[i] = fmt.Sprintf(`- "%s": %s`, f.Title, f.Decision)
	}
	return "\n\nRecent meal feedback (learn from this):\n" + strings.Join(lines, "\n")
}

func preferenceBlock(label, summary string) string {
	if strings.TrimSpace(summary) == "" {
		return ""
	}
	return "\n\n" + label + "\n" + summary
}

// unique trims entries and drops blanks and repeats, keeping first occurrence order.
func unique(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, item := range group {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
