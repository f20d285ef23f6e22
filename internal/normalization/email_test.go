package normalization

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "already_normalized", in: "jane@example.com", want: "jane@example.com"},
		{name: "mixed_case", in: "Jane@Example.COM", want: "jane@example.com"},
		{name: "surrounding_whitespace", in: "  jane@example.com \n", want: "jane@example.com"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace_only", in: "   \t", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeEmail(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeEmail(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	inputs := []string{"Jane@Example.com ", "", "  A@B.C", "weird\temail@x.io\n", "already@done.io"}
	for _, in := range inputs {
		once := NormalizeEmail(in)
		twice := NormalizeEmail(once)
		if once != twice {
			t.Fatalf("NormalizeEmail not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
