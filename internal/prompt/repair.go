package prompt

import (
	"fmt"
	"strings"
)

// RepairTarget describes the shape a malformed response must be coerced into.
type RepairTarget struct {
	Schema string
	// Subject qualifies the schema line, e.g. "for a 5-day meal plan".
	Subject string
	// Requirement is appended after the return instruction.
	Requirement string
}

// PlanRepairTarget restates the day count, which the plan schema does not encode.
func PlanRepairTarget(days int) RepairTarget {
	return RepairTarget{
		Schema:      WeeklyPlanSchema,
		Subject:     fmt.Sprintf("for a %d-day meal plan", days),
		Requirement: fmt.Sprintf(`Ensure the "days" array has exactly %d items.`, days),
	}
}

// Repair renders the repair request. The malformed text is embedded verbatim.
func Repair(target RepairTarget, malformed string) string {
	var b strings.Builder
	b.WriteString("The following JSON is malformed. Fix it to be valid JSON matching this schema")
	if target.Subject != "" {
		b.WriteString(" " + target.Subject)
	}
	b.WriteString(":\n")
	b.WriteString(target.Schema)
	b.WriteString("\n\nMalformed JSON:\n")
	b.WriteString(malformed)
	b.WriteString("\n\nReturn ONLY the repaired valid JSON, nothing else.")
	if target.Requirement != "" {
		b.WriteString(" " + target.Requirement)
	}
	return b.String()
}
