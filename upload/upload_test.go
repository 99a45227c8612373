package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heiftools/heicbridge/iox"
)

func TestUpload_Success(t *testing.T) {
	var gotField, gotName, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/upload/image" {
			t.Errorf("path = %q, want /upload/image", r.URL.Path)
		}
		f, fh, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer iox.DiscardClose(f)
		body, _ := io.ReadAll(f)
		gotField, gotName, gotBody = "image", fh.Filename, string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"cat.heic","subfolder":""}`))
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(iox.CloseFunc(c))

	ref, err := c.Upload(context.Background(), "cat.heic", strings.NewReader("heic-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if ref.Annotated() != "cat.heic" {
		t.Errorf("annotated id = %q, want cat.heic", ref.Annotated())
	}
	if gotField != "image" || gotName != "cat.heic" || gotBody != "heic-bytes" {
		t.Errorf("server saw field=%q name=%q body=%q", gotField, gotName, gotBody)
	}
}

func TestUpload_SubfolderInResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"cat.heic","subfolder":"2024"}`))
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})
	t.Cleanup(iox.CloseFunc(c))

	ref, err := c.Upload(context.Background(), "cat.heic", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if ref.Annotated() != "2024/cat.heic" {
		t.Errorf("annotated id = %q, want 2024/cat.heic", ref.Annotated())
	}
}

func TestUpload_NameDefaultsToSubmittedFilename(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})
	t.Cleanup(iox.CloseFunc(c))

	ref, err := c.Upload(context.Background(), "orig.heif", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if ref.Filename != "orig.heif" || ref.Subfolder != "" {
		t.Errorf("ref = %+v, want name defaulted to orig.heif", ref)
	}
}

func TestUpload_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("disk full"))
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})
	t.Cleanup(iox.CloseFunc(c))

	_, err := c.Upload(context.Background(), "cat.heic", strings.NewReader("x"))
	var ue *UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("want *UploadError, got %v", err)
	}
	if ue.Status != 500 {
		t.Errorf("status = %d, want 500", ue.Status)
	}
	if !strings.Contains(ue.Error(), "500") || !strings.Contains(ue.Error(), "disk full") {
		t.Errorf("message %q should include status and body detail", ue.Error())
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestObjectInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/object_info" {
			t.Errorf("path = %q, want /object_info", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"LoadImagePlusHEIC": {
				"input": {"required": {"image": [["a.heic","b.png"], {"image_upload": true}]}}
			}
		}`))
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})
	t.Cleanup(iox.CloseFunc(c))

	info, err := c.ObjectInfo(context.Background())
	if err != nil {
		t.Fatalf("object info: %v", err)
	}
	got := info.ImageCandidates("LoadImagePlusHEIC")
	if len(got) != 2 || got[0] != "a.heic" {
		t.Errorf("candidates = %v, want [a.heic b.png]", got)
	}
}

func TestObjectInfo_NonOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c, _ := New(Config{BaseURL: ts.URL})
	t.Cleanup(iox.CloseFunc(c))

	if _, err := c.ObjectInfo(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
