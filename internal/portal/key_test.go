package portal_test

import (
	"testing"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

func TestNewRegistrationKey(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		key := portal.NewRegistrationKey()
		if !portal.ValidRegistrationKey(key) {
			t.Fatalf("generated key %q does not match SAL-XXXX-XXXX", key)
		}
	}
}

func TestNormalizeRegistrationKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase is uppercased", in: "sal-ab12-cd34", want: "SAL-AB12-CD34"},
		{name: "surrounding whitespace is trimmed", in: "  SAL-AB12-CD34\n", want: "SAL-AB12-CD34"},
		{name: "canonical keys pass through", in: "SAL-AB12-CD34", want: "SAL-AB12-CD34"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := portal.NormalizeRegistrationKey(tc.in); got != tc.want {
				t.Fatalf("NormalizeRegistrationKey(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidRegistrationKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{key: "SAL-AB12-CD34", want: true},
		{key: "SAL-0000-0000", want: true},
		{key: "sal-ab12-cd34", want: false},
		{key: "SAL-AB1-CD34", want: false},
		{key: "SAL-AB12-CD345", want: false},
		{key: "XYZ-AB12-CD34", want: false},
		{key: "", want: false},
	}

	for _, tc := range tests {
		if got := portal.ValidRegistrationKey(tc.key); got != tc.want {
			t.Errorf("ValidRegistrationKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}
