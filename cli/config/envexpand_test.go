package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("BRIDGE_SET", "value")
	t.Setenv("BRIDGE_EMPTY", "")

	cases := []struct {
		in   string
		want string
	}{
		{"${BRIDGE_SET}", "value"},
		{"${BRIDGE_UNSET}", ""},
		{"${BRIDGE_UNSET:-fallback}", "fallback"},
		{"${BRIDGE_EMPTY:-fallback}", "fallback"},
		{"${BRIDGE_SET:-fallback}", "value"},
		{"prefix-${BRIDGE_SET}-suffix", "prefix-value-suffix"},
		{"no expansion here", "no expansion here"},
		{"$BRIDGE_SET", "$BRIDGE_SET"}, // only ${...} form expands
	}
	for _, tc := range cases {
		if got := ExpandEnv(tc.in); got != tc.want {
			t.Errorf("ExpandEnv(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
