package cases

import (
	"strings"
	"testing"
)

func validCaseInput() CaseInput {
	return CaseInput{
		Title:         "Complex Cardiac Arrhythmia Case",
		Description:   "62-year-old male with recurrent palpitations.",
		Specialty:     "Cardiology",
		Status:        "active",
		Priority:      "high",
		PatientAge:    "62",
		PatientGender: "male",
		Tags:          []string{"arrhythmia"},
	}
}

func fieldNames(errs []FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func assertRejectedOn(t *testing.T, input interface{}, field string) {
	t.Helper()
	err := validate.Struct(input)
	if err == nil {
		t.Fatalf("expected validation error on %q, got none", field)
	}
	for _, name := range fieldNames(FieldErrors(err)) {
		if name == field {
			return
		}
	}
	t.Errorf("expected a field error on %q, got %v", field, fieldNames(FieldErrors(err)))
}

func TestCaseInput_Valid(t *testing.T) {
	if err := validate.Struct(validCaseInput()); err != nil {
		t.Errorf("expected valid input to pass, got %v", err)
	}
}

func TestCaseInput_EmptyTagsAllowed(t *testing.T) {
	input := validCaseInput()
	input.Tags = nil
	if err := validate.Struct(input); err != nil {
		t.Errorf("expected nil tags to pass, got %v", err)
	}
}

func TestCaseInput_MissingTitle(t *testing.T) {
	input := validCaseInput()
	input.Title = ""
	assertRejectedOn(t, input, "title")
}

func TestCaseInput_BadStatus(t *testing.T) {
	input := validCaseInput()
	input.Status = "archived"
	assertRejectedOn(t, input, "status")
}

func TestCaseInput_BadGender(t *testing.T) {
	input := validCaseInput()
	input.PatientGender = "unknown"
	assertRejectedOn(t, input, "patientGender")
}

func TestCaseInput_AttachmentMissingURL(t *testing.T) {
	input := validCaseInput()
	input.Attachments = []AttachmentInput{{Name: "scan.png", Type: "image/png", Size: 10}}
	assertRejectedOn(t, input, "url")
}

func TestCaseUpdate_PartialValid(t *testing.T) {
	status := "resolved"
	update := CaseUpdate{Status: &status}
	if err := validate.Struct(update); err != nil {
		t.Errorf("expected partial update to pass, got %v", err)
	}
}

func TestCaseUpdate_EmptyPatchValid(t *testing.T) {
	if err := validate.Struct(CaseUpdate{}); err != nil {
		t.Errorf("expected empty patch to pass, got %v", err)
	}
}

func TestCaseUpdate_RejectsEmptyTitle(t *testing.T) {
	title := ""
	assertRejectedOn(t, CaseUpdate{Title: &title}, "title")
}

func TestCaseUpdate_RejectsBadPriority(t *testing.T) {
	priority := "critical"
	assertRejectedOn(t, CaseUpdate{Priority: &priority}, "priority")
}

func TestCommentInput_Empty(t *testing.T) {
	assertRejectedOn(t, CommentInput{Content: ""}, "content")
}

func TestCommentInput_AtLimit(t *testing.T) {
	input := CommentInput{Content: strings.Repeat("a", 2000)}
	if err := validate.Struct(input); err != nil {
		t.Errorf("expected 2000-char comment to pass, got %v", err)
	}
}

func TestCommentInput_OverLimit(t *testing.T) {
	assertRejectedOn(t, CommentInput{Content: strings.Repeat("a", 2001)}, "content")
}

func TestFieldErrors_Shape(t *testing.T) {
	input := validCaseInput()
	input.Title = ""
	input.Priority = "critical"

	err := validate.Struct(input)
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := FieldErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(errs), errs)
	}
	for _, e := range errs {
		if e.Field == "" || e.Rule == "" || e.Message == "" {
			t.Errorf("incomplete field error: %+v", e)
		}
	}
}
