package media

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// pngBytes is a 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func fileExists(store *Store, filename string) bool {
	info, err := os.Stat(filepath.Join(store.Dir(), filename))
	return err == nil && info.Mode().IsRegular()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"), "/uploads/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return store
}

func TestSaveSanitizesAndPrefixesName(t *testing.T) {
	store := newTestStore(t)

	img, err := store.Save("my belt (final)!.PNG", bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if img.Filename != "1700000000000-mybeltfinal.PNG" {
		t.Fatalf("unexpected filename %q", img.Filename)
	}
	if img.URL != "/uploads/1700000000000-mybeltfinal.PNG" {
		t.Fatalf("unexpected url %q", img.URL)
	}
	stored, errRead := os.ReadFile(filepath.Join(store.Dir(), img.Filename))
	if errRead != nil {
		t.Fatalf("read stored file: %v", errRead)
	}
	if !bytes.Equal(stored, pngBytes) {
		t.Fatalf("stored bytes differ from upload")
	}

	again, err := store.Save("my belt (final)!.PNG", bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if again.Filename == img.Filename {
		t.Fatalf("expected distinct name for second upload, got %q twice", again.Filename)
	}
}

func TestSaveRejectsDisallowedUploads(t *testing.T) {
	store := newTestStore(t)

	cases := map[string]struct {
		name string
		data []byte
		want error
	}{
		"extension": {name: "notes.txt", data: pngBytes, want: ErrUnsupportedType},
		"svg":       {name: "logo.svg", data: []byte("<svg/>"), want: ErrUnsupportedType},
		"content":   {name: "fake.png", data: []byte("plain text pretending"), want: ErrUnsupportedType},
		"empty":     {name: "empty.png", data: nil, want: ErrEmpty},
		"too large": {name: "big.png", data: append(append([]byte{}, pngBytes...), make([]byte, MaxUploadBytes)...), want: ErrTooLarge},
	}
	for name, tc := range cases {
		if _, err := store.Save(tc.name, bytes.NewReader(tc.data)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
	images, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("expected nothing stored, got %v", images)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"b.webp", "a.jpg", "c.JPEG", "readme.md", "d.svg"} {
		if err := os.WriteFile(filepath.Join(store.Dir(), name), pngBytes, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(store.Dir(), "nested.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	images, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, img := range images {
		names = append(names, img.Filename)
	}
	if got := strings.Join(names, ","); got != "a.jpg,b.webp,c.JPEG" {
		t.Fatalf("unexpected listing %q", got)
	}
	if images[0].URL != "/uploads/a.jpg" {
		t.Fatalf("unexpected url %q", images[0].URL)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	img, err := store.Save("wallet.png", bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !fileExists(store, img.Filename) {
		t.Fatalf("expected %s to exist", img.Filename)
	}
	if err := store.Delete(img.Filename); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fileExists(store, img.Filename) {
		t.Fatalf("expected %s to be gone", img.Filename)
	}
	if err := store.Delete(img.Filename); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, name := range []string{"", "..", "../secret.png", `..\secret.png`, "a/b.png"} {
		if err := store.Delete(name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Delete(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}
