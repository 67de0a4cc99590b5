package validators

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Phone     string `validate:"required,phone"`
	Gender    string `validate:"required,gender"`
	BirthDate string `validate:"required,date"`
	Time      string `validate:"required,clock"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatalf("register: %v", err)
	}
	return v
}

func TestCustomTagsAccept(t *testing.T) {
	v := newValidate(t)
	in := sample{Phone: "11999999999", Gender: "F", BirthDate: "1990-01-01", Time: "09:30"}
	if err := v.Struct(in); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestCustomTagsReject(t *testing.T) {
	v := newValidate(t)
	in := sample{Phone: "12-34", Gender: "X", BirthDate: "01/01/1990", Time: "9h"}

	err := v.Struct(in)
	if err == nil {
		t.Fatalf("expected validation error")
	}

	msg := Message(err)
	for _, want := range []string{"phone", "gender", "birth_date", "time"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q does not mention %s", msg, want)
		}
	}
}

func TestMessageForNonValidationError(t *testing.T) {
	if got := Message(nil); got != "Dados inválidos." {
		t.Fatalf("unexpected message %q", got)
	}
}
