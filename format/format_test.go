package format

import "testing"

func TestIsUnsupported(t *testing.T) {
	c := Default()

	cases := []struct {
		name string
		want bool
	}{
		{"photo.heic", true},
		{"photo.heif", true},
		{"PHOTO.HEIC", true},
		{"Photo.HeIf", true},
		{"2024/photo.heic", true},
		{"photo.png", false},
		{"photo.jpg", false},
		{"photo.heic.png", false},
		{"heic", false},
		{"", false},
		// Whitespace is deliberately not trimmed.
		{"photo.heic ", false},
		{" photo.png", false},
	}
	for _, tc := range cases {
		if got := c.IsUnsupported(tc.name); got != tc.want {
			t.Errorf("IsUnsupported(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMatchesMIME(t *testing.T) {
	c := Default()

	if !c.MatchesMIME("image/heic") {
		t.Error("image/heic should match")
	}
	if !c.MatchesMIME("IMAGE/HEIF") {
		t.Error("MIME matching should be case-insensitive")
	}
	if c.MatchesMIME("image/png") {
		t.Error("image/png should not match")
	}
	if c.MatchesMIME("") {
		t.Error("empty MIME should not match the set itself")
	}
}

func TestCustomExtensionSet(t *testing.T) {
	c := New([]string{".AVIF"}, []string{"image/avif"})

	if !c.IsUnsupported("pic.avif") {
		t.Error("custom extension should match lowercased")
	}
	if c.IsUnsupported("pic.heic") {
		t.Error("default extensions should not apply to a custom set")
	}
}
