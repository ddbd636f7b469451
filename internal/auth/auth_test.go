package auth_test

import (
	"testing"

	"github.com/lox/betteridle/internal/auth"
)

func TestStaticTokenValidatorRejectsMismatch(t *testing.T) {
	v := auth.NewStaticTokenValidator("secret")
	if err := v.Validate("secret"); err != nil {
		t.Fatalf("expected matching token to validate, got %v", err)
	}
	if err := v.Validate("wrong"); err != auth.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if err := v.Validate(""); err != auth.ErrInvalidToken {
		t.Fatalf("expected empty token to be rejected, got %v", err)
	}
}

func TestNoopValidatorAllowsAnything(t *testing.T) {
	v := auth.NewNoopValidator()
	if err := v.Validate(""); err != nil {
		t.Fatalf("expected noop validator to allow, got %v", err)
	}
}

func TestNewPicksValidatorByToken(t *testing.T) {
	if _, ok := auth.New("").(*auth.NoopValidator); !ok {
		t.Fatalf("expected New(\"\") to return a NoopValidator")
	}
	if _, ok := auth.New("x").(*auth.StaticTokenValidator); !ok {
		t.Fatalf("expected New(\"x\") to return a StaticTokenValidator")
	}
}
