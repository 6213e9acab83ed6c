package patient

import (
	"testing"

	"github.com/mylatitude/engage/internal/shared/errors"
)

func validRequest() CreatePatientRequest {
	return CreatePatientRequest{
		Name:  "Anna Rossi",
		Email: "anna@example.com",
		Age:   44,
		Sex:   SexFemale,
		Phone: "+39 333 1234567",
	}
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	store := NewStore()

	for i := 1; i <= 3; i++ {
		p, err := store.Add(validRequest())
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if p.ID != i {
			t.Errorf("Expected ID %d, got %d", i, p.ID)
		}
	}
	if store.Count() != 3 {
		t.Errorf("Expected 3 patients, got %d", store.Count())
	}
}

func TestAddNormalizesEmail(t *testing.T) {
	store := NewStore()

	req := validRequest()
	req.Email = "Anna.Rossi@Example.COM"
	p, err := store.Add(req)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if p.Email != "anna.rossi@example.com" {
		t.Errorf("Expected lowercased email, got '%s'", p.Email)
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreatePatientRequest)
		field  string
	}{
		{"missing name", func(r *CreatePatientRequest) { r.Name = "  " }, "name"},
		{"missing email", func(r *CreatePatientRequest) { r.Email = "" }, "email"},
		{"email without at sign", func(r *CreatePatientRequest) { r.Email = "anna.example.com" }, "email"},
		{"negative age", func(r *CreatePatientRequest) { r.Age = -1 }, "age"},
		{"age too high", func(r *CreatePatientRequest) { r.Age = 121 }, "age"},
		{"unknown sex", func(r *CreatePatientRequest) { r.Sex = "X" }, "sex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			req := validRequest()
			tt.mutate(&req)

			_, err := store.Add(req)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if appErr.Code != "VALIDATION_ERROR" {
				t.Errorf("Expected VALIDATION_ERROR, got %s", appErr.Code)
			}
			if _, present := appErr.Details[tt.field]; !present {
				t.Errorf("Expected detail for field '%s', got %v", tt.field, appErr.Details)
			}
			if store.Count() != 0 {
				t.Error("Rejected patient must not be stored")
			}
		})
	}
}

func TestGetNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Get(42)
	if err == nil {
		t.Fatal("Expected error for unknown patient")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND, got %s", appErr.Code)
	}
}

func TestFindByEmail(t *testing.T) {
	store := NewStore()
	store.Add(validRequest())

	found := store.FindByEmail("ANNA@example.COM")
	if len(found) != 1 {
		t.Fatalf("Expected 1 match ignoring case, got %d", len(found))
	}
	if found[0].ID != 1 {
		t.Errorf("Expected patient 1, got %d", found[0].ID)
	}

	if got := store.FindByEmail("nobody@example.com"); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
	if got := store.FindByEmail("   "); len(got) != 0 {
		t.Errorf("Blank email must match nothing, got %d", len(got))
	}
}

func TestInfo(t *testing.T) {
	store := NewStore()
	store.Add(validRequest())

	name, phone, err := store.Info(1)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if name != "Anna Rossi" || phone != "+39 333 1234567" {
		t.Errorf("Unexpected contact details: %s / %s", name, phone)
	}

	if _, _, err := store.Info(9); err == nil {
		t.Error("Expected error for unknown patient")
	}
}
