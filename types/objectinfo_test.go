package types

import (
	"encoding/json"
	"testing"
)

const objectInfoJSON = `{
	"LoadImagePlusHEIC": {
		"input": {
			"required": {
				"image": [["cat.heic", "dog.png"], {"image_upload": true}]
			}
		}
	},
	"OtherNode": {
		"input": {
			"required": {
				"image": "not-a-combo"
			}
		}
	}
}`

func TestImageCandidates(t *testing.T) {
	var info ObjectInfo
	if err := json.Unmarshal([]byte(objectInfoJSON), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := info.ImageCandidates("LoadImagePlusHEIC")
	want := []string{"cat.heic", "dog.png"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestImageCandidates_MalformedShapes(t *testing.T) {
	var info ObjectInfo
	if err := json.Unmarshal([]byte(objectInfoJSON), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := info.ImageCandidates("OtherNode"); got != nil {
		t.Errorf("malformed combo spec should yield nil, got %v", got)
	}
	if got := info.ImageCandidates("MissingNode"); got != nil {
		t.Errorf("unknown node type should yield nil, got %v", got)
	}
}
