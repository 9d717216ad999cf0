package response_test

import (
	"errors"
	"testing"

	"github.com/gauthier-se/Checkpoint/internal/api"
	"github.com/gauthier-se/Checkpoint/internal/service"
	"github.com/gauthier-se/Checkpoint/pkg/response"
)

// fakeInvalid mimics the aggregated validation error without reaching into
// service internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "email", Message: "is required"}}}, 400},
		{"not_found", api.ErrNotFound, 404},
		{"unauthorized", api.ErrUnauthorized, 401},
		{"unavailable", api.ErrUnavailable, 502},
		{"internal", errors.New("boom"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, page := response.MapError(tc.in)
			if code != tc.wantCode || page.Status != tc.wantCode {
				t.Fatalf("unexpected mapping: got (%d, %d) want %d", code, page.Status, tc.wantCode)
			}
			if tc.wantCode == 400 && len(page.FieldErrors) == 0 {
				t.Fatal("expected field errors on the invalid-input page")
			}
		})
	}
}
