package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mediremind-backend/models"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name string
		body string
		vars map[string]string
		want string
	}{
		{
			name: "simple substitution",
			body: "Hello {{patient_name}}",
			vars: map[string]string{"patient_name": "Amina"},
			want: "Hello Amina",
		},
		{
			name: "unresolved placeholder passes through",
			body: "{{x}} {{y}}",
			vars: map[string]string{"x": "A"},
			want: "A {{y}}",
		},
		{
			name: "every occurrence is replaced",
			body: "{{name}}, yes {{name}}, we mean {{name}}",
			vars: map[string]string{"name": "Joseph"},
			want: "Joseph, yes Joseph, we mean Joseph",
		},
		{
			name: "no placeholders",
			body: "Plain message",
			vars: map[string]string{"patient_name": "Amina"},
			want: "Plain message",
		},
		{
			name: "empty body",
			body: "",
			vars: map[string]string{"x": "A"},
			want: "",
		},
		{
			name: "nil vars leave body intact",
			body: "Hi {{patient_name}}",
			vars: nil,
			want: "Hi {{patient_name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.body, tt.vars))
		})
	}
}

func TestTemplateVars(t *testing.T) {
	patient := &models.Patient{Name: "Amina Hassan"}
	doctor := &models.Doctor{Name: "Dr. Mwangi"}
	clinic := &models.Clinic{Name: "Sunrise Clinic", Phone: "+254700000000"}
	appt := &models.Appointment{
		DateTime: time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC),
	}

	vars := TemplateVars(patient, doctor, clinic, appt)

	assert.Equal(t, "Amina Hassan", vars["patient_name"])
	assert.Equal(t, "Dr. Mwangi", vars["doctor_name"])
	assert.Equal(t, "Wednesday, 11 Mar 2026", vars["appointment_date"])
	assert.Equal(t, "2:30 PM", vars["appointment_time"])
	assert.Equal(t, "Sunrise Clinic", vars["clinic_name"])
	assert.Equal(t, "+254700000000", vars["clinic_phone"])
}
