package models_test

import (
	"testing"

	"github.com/FractalFish/recruitment-portal/internal/models"
)

func TestParseApplicationStatus_ValidValues(t *testing.T) {
	valid := []string{"UNHANDLED", "ACCEPTED", "REJECTED"}
	for _, s := range valid {
		got, err := models.ParseApplicationStatus(s)
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseApplicationStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"UNKNOWN", "accepted", "Accepted", "HANDLED"} {
		if _, err := models.ParseApplicationStatus(s); err == nil {
			t.Errorf("ParseApplicationStatus(%q) expected error, got nil", s)
		}
	}
}

func TestParseApplicationStatus_EmptyString(t *testing.T) {
	if _, err := models.ParseApplicationStatus(""); err == nil {
		t.Error("ParseApplicationStatus(\"\") expected error, got nil")
	}
}

func TestPersonFullName(t *testing.T) {
	p := models.Person{Name: "Greta", Surname: "Borg"}
	if got := p.FullName(); got != "Greta Borg" {
		t.Errorf("FullName() = %q, want %q", got, "Greta Borg")
	}
}
