package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/ai_visibility/app/ai_visibility/pkg/errs"
)

func TestBrand(t *testing.T) {
	tests := []struct {
		name    string
		brand   string
		domain  string
		wantErr bool
	}{
		{"valid", "  Stripe ", " https://stripe.com ", false},
		{"empty name", "   ", "https://stripe.com", true},
		{"empty domain", "Stripe", "", true},
		{"no scheme", "Stripe", "stripe.com", true},
		{"no host", "Stripe", "https://", true},
		{"garbage", "Stripe", "ht tp://%%", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, domain, err := Brand(tt.brand, tt.domain)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Brand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errs.IsValidation(err) {
					t.Errorf("Brand() error is not a validation error: %v", err)
				}
				return
			}
			if name != "Stripe" || domain != "https://stripe.com" {
				t.Errorf("Brand() = %q, %q", name, domain)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"jane@example.com":    true,
		"a.b+c@mail.co.uk":    true,
		"foo@bar":             false,
		"foo bar@example.com": false,
		"@example.com":        false,
		"foo@":                false,
		"foo@@example.com":    false,
	}
	for in, want := range tests {
		if got := IsEmail(in); got != want {
			t.Errorf("IsEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContact(t *testing.T) {
	if _, _, err := Contact("", "jane@example.com"); !errs.IsValidation(err) {
		t.Errorf("empty name: err = %v", err)
	}
	if _, _, err := Contact("Jane", "foo@bar"); !errs.IsValidation(err) {
		t.Errorf("foo@bar: err = %v", err)
	}
	name, email, err := Contact(" Jane ", " jane@example.com ")
	if err != nil || name != "Jane" || email != "jane@example.com" {
		t.Errorf("Contact() = %q, %q, %v", name, email, err)
	}
}

func TestIndex(t *testing.T) {
	if err := Index(0, 1); err != nil {
		t.Errorf("Index(0,1) = %v", err)
	}
	for _, i := range []int{-1, 1, 5} {
		if err := Index(i, 1); !errs.IsValidation(err) {
			t.Errorf("Index(%d,1) = %v", i, err)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("short", 50); got != "short" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("unbounded", 0); got != "unbounded" {
		t.Errorf("Truncate() = %q", got)
	}
}

func TestClean(t *testing.T) {
	got := Clean([]string{" a ", "", "   ", "b"})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
	}
}
