package gallery

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(dir, log), dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexEmpty(t *testing.T) {
	s, _ := testServer(t)
	rec := get(t, s.Handler(), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No images yet") {
		t.Error("empty gallery placeholder missing")
	}
}

func TestIndexListsImages(t *testing.T) {
	s, dir := testServer(t)
	for _, name := range []string{"b.png", "a.png", "notes.txt", "c.jpeg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	body := get(t, s.Handler(), "/").Body.String()
	for _, want := range []string{"a.png", "b.png", "c.jpeg"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %s", want)
		}
	}
	if strings.Contains(body, "notes.txt") {
		t.Error("non-image listed")
	}
	if strings.Index(body, "a.png") > strings.Index(body, "b.png") {
		t.Error("images not sorted")
	}
}

func TestServeImage(t *testing.T) {
	s, dir := testServer(t)
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	if err := os.WriteFile(filepath.Join(dir, "shot.png"), payload, 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s.Handler(), "/img/shot.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	data, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(data, payload) {
		t.Error("served bytes differ")
	}
}

func TestServeImageRejectsTraversalAndNonImages(t *testing.T) {
	s, dir := testServer(t)
	if err := os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{
		"/img/secret.txt",
		"/img/..%2Fsecret.txt",
	} {
		rec := get(t, s.Handler(), path)
		if rec.Code == http.StatusOK {
			t.Errorf("%s unexpectedly served", path)
		}
	}
}
