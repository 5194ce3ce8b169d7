package services

import (
	"strings"

	"mediremind-backend/models"
	"mediremind-backend/utils"
)

// RenderTemplate substitutes every occurrence of each known {{name}}
// placeholder in body. Placeholders with no matching variable are left
// verbatim, so rendering never fails.
func RenderTemplate(body string, vars map[string]string) string {
	for name, value := range vars {
		body = strings.ReplaceAll(body, "{{"+name+"}}", value)
	}
	return body
}

// TemplateVars builds the standard placeholder set for one appointment.
func TemplateVars(patient *models.Patient, doctor *models.Doctor, clinic *models.Clinic, appt *models.Appointment) map[string]string {
	return map[string]string{
		"patient_name":     patient.Name,
		"doctor_name":      doctor.Name,
		"appointment_date": utils.FormatDate(appt.DateTime),
		"appointment_time": utils.FormatTime(appt.DateTime),
		"clinic_name":      clinic.Name,
		"clinic_phone":     clinic.Phone,
	}
}
