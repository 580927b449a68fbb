package api

import "testing"

func violationFor(violations []FieldError, field string) *FieldError {
	for i := range violations {
		if violations[i].Field == field {
			return &violations[i]
		}
	}
	return nil
}

func TestValidateRegisterRules(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string]string
	}{
		{
			name: "valid body",
			body: `{"email":"alice@example.com","password":"123456"}`,
		},
		{
			name: "both fields missing",
			body: `{}`,
			wantFields: map[string]string{
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
		{
			name: "null fields",
			body: `{"email":null,"password":null}`,
			wantFields: map[string]string{
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
		{
			name: "invalid email shape",
			body: `{"email":"not-an-email","password":"123456"}`,
			wantFields: map[string]string{
				"email": "Must be a valid email",
			},
		},
		{
			name: "empty password",
			body: `{"email":"alice@example.com","password":""}`,
			wantFields: map[string]string{
				"password": "Password is required",
			},
		},
		{
			name: "email wrong type",
			body: `{"email":42,"password":"123456"}`,
			wantFields: map[string]string{
				"email": "Email must be a string",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate([]byte(tt.body), registerRules)

			if len(violations) != len(tt.wantFields) {
				t.Fatalf("expected %d violations, got %d: %v", len(tt.wantFields), len(violations), violations)
			}
			for field, message := range tt.wantFields {
				v := violationFor(violations, field)
				if v == nil {
					t.Errorf("expected violation for field %q", field)
					continue
				}
				if v.Message != message {
					t.Errorf("field %q: expected message %q, got %q", field, message, v.Message)
				}
			}
		})
	}
}

func TestValidateCreateTaskRules(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string]string
	}{
		{
			name: "valid minimal body",
			body: `{"title":"Buy milk"}`,
		},
		{
			name: "valid full body",
			body: `{"title":"Buy milk","description":"Two liters","completed":true}`,
		},
		{
			name: "missing title",
			body: `{"description":"No title"}`,
			wantFields: map[string]string{
				"title": "Title is required",
			},
		},
		{
			name: "empty title",
			body: `{"title":""}`,
			wantFields: map[string]string{
				"title": "Title is required",
			},
		},
		{
			name: "completed wrong type",
			body: `{"title":"Buy milk","completed":"yes"}`,
			wantFields: map[string]string{
				"completed": "Completed must be a boolean",
			},
		},
		{
			name: "description wrong type",
			body: `{"title":"Buy milk","description":7}`,
			wantFields: map[string]string{
				"description": "Description must be a string",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate([]byte(tt.body), createTaskRules)

			if len(violations) != len(tt.wantFields) {
				t.Fatalf("expected %d violations, got %d: %v", len(tt.wantFields), len(violations), violations)
			}
			for field, message := range tt.wantFields {
				v := violationFor(violations, field)
				if v == nil {
					t.Errorf("expected violation for field %q", field)
					continue
				}
				if v.Message != message {
					t.Errorf("field %q: expected message %q, got %q", field, message, v.Message)
				}
			}
		})
	}
}

func TestValidateUpdateTaskRules(t *testing.T) {
	// All fields optional; an empty object is valid.
	if violations := Validate([]byte(`{}`), updateTaskRules); violations != nil {
		t.Errorf("expected no violations for empty update, got %v", violations)
	}

	// A provided title must not be empty.
	violations := Validate([]byte(`{"title":""}`), updateTaskRules)
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(violations), violations)
	}
	if violations[0].Message != "Title cannot be empty if provided" {
		t.Errorf("unexpected message %q", violations[0].Message)
	}
}

func TestValidateNonObjectBody(t *testing.T) {
	for _, body := range []string{"", "not json", `"just a string"`, `[1,2,3]`} {
		violations := Validate([]byte(body), registerRules)
		if len(violations) != 1 || violations[0].Field != "body" {
			t.Errorf("body %q: expected single body violation, got %v", body, violations)
		}
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	body := `{"title":"","completed":"nope","description":1}`
	violations := Validate([]byte(body), createTaskRules)
	if len(violations) != 3 {
		t.Errorf("expected all 3 violations reported, got %d: %v", len(violations), violations)
	}
}
