package utils

import "testing"

func TestValidateAndNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Admin", "admin", true},
		{"brand", "brand", true},
		{"DISPENSARY", "dispensary", true},
		{"merchant", "merchant", false},
		{"unknown", "unknown", false},
	}

	for _, c := range cases {
		got, ok := ValidateAndNormalizeRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ValidateAndNormalizeRole(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole("admin") {
		t.Fatalf("expected admin to be valid")
	}
	if IsValidRole("not-a-role") {
		t.Fatalf("expected not-a-role to be invalid")
	}
}
