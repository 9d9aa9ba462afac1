package validate

import (
	"errors"
	"testing"

	"github.com/kurakampus/kurakampus-cli/internal/apierr"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username             string `validate:"required,min=3,max=30"`
	Password             string `validate:"required,min=8"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func TestStructValid(t *testing.T) {
	err := Struct(loginForm{Email: "user@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructCollectsFieldErrors(t *testing.T) {
	err := Struct(loginForm{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if apiErr.Code != apierr.CodeValidation {
		t.Fatalf("Code = %q", apiErr.Code)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("local validation must not carry an HTTP status, got %d", apiErr.StatusCode)
	}
	if len(apiErr.Errors) != 2 {
		t.Fatalf("got %d field errors, want 2: %+v", len(apiErr.Errors), apiErr.Errors)
	}

	byField := map[string]apierr.FieldError{}
	for _, fe := range apiErr.Errors {
		byField[fe.Field] = fe
	}
	// Field names are lowercased to the wire convention
	if _, ok := byField["email"]; !ok {
		t.Fatalf("missing email field error: %+v", apiErr.Errors)
	}
	if fe := byField["password"]; fe.Message != "This field is required" {
		t.Fatalf("password message = %q", fe.Message)
	}
}

func TestStructMismatchedPasswords(t *testing.T) {
	err := Struct(registerForm{
		Username:             "student",
		Password:             "password123",
		PasswordConfirmation: "password456",
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if len(apiErr.Errors) != 1 {
		t.Fatalf("got %d field errors: %+v", len(apiErr.Errors), apiErr.Errors)
	}
	if apiErr.Errors[0].Constraint != "eqfield" {
		t.Fatalf("constraint = %q", apiErr.Errors[0].Constraint)
	}
	if apiErr.Errors[0].Message != "Fields do not match" {
		t.Fatalf("message = %q", apiErr.Errors[0].Message)
	}
}

func TestStructLengthMessages(t *testing.T) {
	err := Struct(registerForm{
		Username:             "ab",
		Password:             "short",
		PasswordConfirmation: "short",
	})

	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}

	for _, fe := range apiErr.Errors {
		switch fe.Field {
		case "username":
			if fe.Message != "Minimum length is 3 characters" {
				t.Errorf("username message = %q", fe.Message)
			}
		case "password":
			if fe.Message != "Minimum length is 8 characters" {
				t.Errorf("password message = %q", fe.Message)
			}
		}
	}
}
