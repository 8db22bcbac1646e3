package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"nestling/shared/failure"
	"nestling/shared/validator"
)

type createRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age"   validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"name":"Emma","email":"emma@example.com","age":4}`,
		},
		{
			name:    "missing required field",
			body:    `{"email":"emma@example.com","age":4}`,
			wantErr: true,
		},
		{
			name:    "invalid email",
			body:    `{"name":"Emma","email":"not-an-email","age":4}`,
			wantErr: true,
		},
		{
			name:    "negative age",
			body:    `{"name":"Emma","email":"emma@example.com","age":-1}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"name":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				if code := failure.GetCode(err); code != http.StatusBadRequest {
					t.Errorf("expected code %d, got %d", http.StatusBadRequest, code)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Mimetypes(t *testing.T) {
	type photoRequest struct {
		PhotoData string `validate:"required,mimetypes=image/jpeg image/png"`
	}

	valid := photoRequest{PhotoData: "data:image/png;base64,iVBORw0KGgo="}
	if err := validator.ValidateStruct(&valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := photoRequest{PhotoData: "data:text/plain;base64,SGVsbG8="}
	if err := validator.ValidateStruct(&invalid); err == nil {
		t.Fatal("expected error for disallowed mimetype")
	}
}
