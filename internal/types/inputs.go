package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Constraints are the structured per-session wishes rendered into the prompt.
// ChatInput is set instead when a session comes from conversational input.
type Constraints struct {
	TimeMins    *float64 `json:"timeMins,omitempty" binding:"omitempty,gt=0"`
	CuisineMood string   `json:"cuisineMood,omitempty"`
	SpiceLevel  string   `json:"spiceLevel,omitempty" binding:"omitempty,oneof=mild medium spicy"`
	Diet        string   `json:"diet,omitempty"`
	Effort      string   `json:"effort,omitempty" binding:"omitempty,oneof=minimal moderate involved"`
	ChatInput   string   `json:"chatInput,omitempty"`
}

// Entry is one rendered constraint key and value
type Entry struct {
	Key   string
	Value string
}

// Entries returns the constraints that are present and non-empty, in a fixed order.
func (c Constraints) Entries() []Entry {
	var out []Entry
	add := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			out = append(out, Entry{Key: key, Value: value})
		}
	}
	if c.TimeMins != nil {
		add("timeMins", strconv.FormatFloat(*c.TimeMins, 'f', -1, 64))
	}
	add("cuisineMood", c.CuisineMood)
	add("spiceLevel", c.SpiceLevel)
	add("diet", c.Diet)
	add("effort", c.Effort)
	add("chatInput", c.ChatInput)
	return out
}

// ParseConstraints decodes a stored constraints document. Empty input yields no constraints.
func ParseConstraints(raw string) (Constraints, error) {
	var c Constraints
	if strings.TrimSpace(raw) == "" {
		return c, nil
	}
	err := json.Unmarshal([]byte(raw), &c)
	return c, err
}

// PlanInputs describe a multi-day plan request
type PlanInputs struct {
	Days            int      `json:"days" binding:"required,oneof=3 5 7"`
	MaxCookTime     int      `json:"maxCookTime" binding:"required,min=15,max=120"`
	Diet            string   `json:"diet,omitempty"`
	IncludeCuisines []string `json:"includeCuisines,omitempty"`
	ExcludeCuisines []string `json:"excludeCuisines,omitempty"`
}

// Decision is the user's verdict on a suggested meal
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
	DecisionNotNow Decision = "NOT_NOW"
)

// Reason qualifies a decision
type Reason string

const (
	ReasonTooLong            Reason = "TOO_LONG"
	ReasonTooComplex         Reason = "TOO_COMPLEX"
	ReasonDontLikeIngredient Reason = "DONT_LIKE_INGREDIENT"
	ReasonNotInMood          Reason = "NOT_IN_MOOD"
	ReasonTooUnhealthy       Reason = "TOO_UNHEALTHY"
	ReasonOther              Reason = "OTHER"
)
