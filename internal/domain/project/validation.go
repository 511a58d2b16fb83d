package project

import "strings"

// ValidateInput checks fields required before a project can be stored.
func ValidateInput(p Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}

// normalize applies defaulting rules: priority defaults to Medium and
// completion is clamped to [0,100].
func normalize(p Project) Project {
	if p.Priority != PriorityHigh && p.Priority != PriorityMedium && p.Priority != PriorityLow {
		p.Priority = PriorityMedium
	}
	p.Completion = clamp(p.Completion)
	return p
}

func clamp(c Completion) Completion {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
