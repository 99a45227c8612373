package types

import "testing"

func TestAnnotated_BareFilename(t *testing.T) {
	r := NewResourceReference("cat.heic", "")
	if got := r.Annotated(); got != "cat.heic" {
		t.Errorf("Annotated() = %q, want %q", got, "cat.heic")
	}
}

func TestAnnotated_WithSubfolder(t *testing.T) {
	r := NewResourceReference("cat.heic", "2024")
	if got := r.Annotated(); got != "2024/cat.heic" {
		t.Errorf("Annotated() = %q, want %q", got, "2024/cat.heic")
	}
}

func TestParseAnnotated_RoundTrip(t *testing.T) {
	cases := []ResourceReference{
		{Filename: "cat.heic"},
		{Filename: "cat.heic", Subfolder: "2024"},
		{Filename: "img.heif", Subfolder: "a/b"},
	}
	for _, want := range cases {
		got := ParseAnnotated(want.Annotated())
		if got != want {
			t.Errorf("ParseAnnotated(%q) = %+v, want %+v", want.Annotated(), got, want)
		}
	}
}
