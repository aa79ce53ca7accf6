package models

import "github.com/shangour/URmine149/constants"

// TemplatePhases returns a fresh copy of the standard phase sequence
// stamped onto every new task.
func TemplatePhases() []Phase {
	return []Phase{
		{Name: "Tutorial Selection", ExpectedDuration: 60, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
		{Name: "PRD Creation", ExpectedDuration: 120, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
		{Name: "Demo Implementation", ExpectedDuration: 180, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
		{Name: "URmine Integration", ExpectedDuration: 150, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
		{Name: "Validation & Deployment", ExpectedDuration: 90, Status: constants.PhaseStatusPending, ValidationStatus: constants.ValidationPending},
	}
}

// TemplateDeliverables returns a fresh copy of the standard deliverable set.
func TemplateDeliverables() []Deliverable {
	return []Deliverable{
		{ID: "del-1", Type: "Tutorial Links Compilation"},
		{ID: "del-2", Type: "Reverse-Engineered PRD"},
		{ID: "del-3", Type: "Demo App URL"},
		{ID: "del-4", Type: "URmine Implementation URL"},
		{ID: "del-5", Type: "GitHub Repository Link"},
	}
}

// TemplateDuration is the expected duration in minutes of a task built
// from the standard phase template.
func TemplateDuration() int {
	total := 0
	for _, p := range TemplatePhases() {
		total += p.ExpectedDuration
	}
	return total
}
