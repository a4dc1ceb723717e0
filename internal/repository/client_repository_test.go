package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria", "Maria"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`C:\temp`, `C:\\temp`},
		{"%_%", `\%\_\%`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
