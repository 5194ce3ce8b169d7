package services

import (
	"mediremind-backend/models"
)

// SelectTemplate picks the template best matching a patient's language and
// preferred channel for an appointment daysUntil days away. Only exact
// language+channel matches are considered; among those the template whose
// timing offset is closest to daysUntil wins. Equal distances keep the
// first match in input order. Returns nil when no template matches, which
// callers treat as "no reminder available", not an error.
func SelectTemplate(templates []models.ReminderTemplate, language string, channel models.Channel, daysUntil int) *models.ReminderTemplate {
	var closest *models.ReminderTemplate
	minDiff := -1

	for i := range templates {
		t := &templates[i]
		if t.Language != language || t.Channel != channel {
			continue
		}
		diff := t.TimingDays - daysUntil
		if diff < 0 {
			diff = -diff
		}
		if minDiff < 0 || diff < minDiff {
			minDiff = diff
			closest = t
		}
	}

	return closest
}
