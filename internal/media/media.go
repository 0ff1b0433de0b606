// Package media stores uploaded product and gallery images on local disk.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadBytes is the largest accepted image upload.
const MaxUploadBytes = 10 << 20

// Media store errors.
var (
	ErrNotFound        = errors.New("media: file not found")
	ErrInvalidName     = errors.New("media: invalid filename")
	ErrUnsupportedType = errors.New("media: only image files are allowed")
	ErrTooLarge        = errors.New("media: file too large")
	ErrEmpty           = errors.New("media: empty file")
)

// Dimensions advertises the crop geometry used by the admin gallery.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GalleryDimensions is the fixed size advertised to clients. Stored bytes are not checked against it.
var GalleryDimensions = Dimensions{Width: 500, Height: 500}

// Image is a stored file and its public URL.
type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

var (
	allowedExt    = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)$`)
	disallowedRun = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	allowedMIME   = []string{"image/jpeg", "image/png", "image/webp"}
)

// Store is a flat directory of image files.
type Store struct {
	dir       string
	urlPrefix string
	now       func() time.Time

	mu     sync.Mutex
	lastTS int64
}

// NewStore creates dir when missing and returns a Store serving files under urlPrefix.
func NewStore(dir, urlPrefix string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("media: directory is required")
	}
	if errMkdir := os.MkdirAll(dir, 0o755); errMkdir != nil {
		return nil, fmt.Errorf("media: create %s: %w", dir, errMkdir)
	}
	prefix := "/" + strings.Trim(urlPrefix, "/")
	return &Store{dir: dir, urlPrefix: prefix, now: time.Now}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

// URL returns the public URL for filename.
func (s *Store) URL(filename string) string {
	return path.Join(s.urlPrefix, filename)
}

// AllowedFilename reports whether name carries an accepted image extension.
func AllowedFilename(name string) bool {
	return allowedExt.MatchString(name)
}

// SanitizeFilename strips every character outside [A-Za-z0-9.-] from the base of name.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return disallowedRun.ReplaceAllString(base, "")
}

// Save writes the bytes from r verbatim under a timestamp-prefixed sanitized name.
func (s *Store) Save(originalName string, r io.Reader) (Image, error) {
	clean := SanitizeFilename(originalName)
	if !AllowedFilename(clean) {
		return Image{}, ErrUnsupportedType
	}
	data, errRead := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if errRead != nil {
		return Image{}, fmt.Errorf("media: read upload: %w", errRead)
	}
	if len(data) == 0 {
		return Image{}, ErrEmpty
	}
	if len(data) > MaxUploadBytes {
		return Image{}, ErrTooLarge
	}
	if !isAllowedMIME(data) {
		return Image{}, ErrUnsupportedType
	}

	for attempt := 0; attempt < 5; attempt++ {
		name := fmt.Sprintf("%d-%s", s.nextStamp(), clean)
		f, errOpen := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(errOpen, os.ErrExist) {
			continue
		}
		if errOpen != nil {
			return Image{}, fmt.Errorf("media: create %s: %w", name, errOpen)
		}
		_, errWrite := f.Write(data)
		errClose := f.Close()
		if errWrite == nil {
			errWrite = errClose
		}
		if errWrite != nil {
			_ = os.Remove(filepath.Join(s.dir, name))
			return Image{}, fmt.Errorf("media: write %s: %w", name, errWrite)
		}
		return Image{Filename: name, URL: s.URL(name)}, nil
	}
	return Image{}, fmt.Errorf("media: could not allocate a name for %s", clean)
}

// Delete removes filename. A missing file yields ErrNotFound.
func (s *Store) Delete(filename string) error {
	if errName := validateName(filename); errName != nil {
		return errName
	}
	errRemove := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(errRemove, os.ErrNotExist) {
		return ErrNotFound
	}
	if errRemove != nil {
		return fmt.Errorf("media: delete %s: %w", filename, errRemove)
	}
	return nil
}

// List returns the stored images with an accepted extension, sorted by filename.
func (s *Store) List() ([]Image, error) {
	entries, errRead := os.ReadDir(s.dir)
	if errRead != nil {
		return nil, fmt.Errorf("media: list %s: %w", s.dir, errRead)
	}
	images := make([]Image, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !AllowedFilename(entry.Name()) {
			continue
		}
		images = append(images, Image{Filename: entry.Name(), URL: s.URL(entry.Name())})
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Filename < images[j].Filename })
	return images, nil
}

// nextStamp returns a millisecond timestamp strictly greater than the previous one.
func (s *Store) nextStamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now().UnixMilli()
	if ts <= s.lastTS {
		ts = s.lastTS + 1
	}
	s.lastTS = ts
	return ts
}

func isAllowedMIME(data []byte) bool {
	detected := mimetype.Detect(data)
	for _, m := range allowedMIME {
		if detected.Is(m) {
			return true
		}
	}
	return false
}

func validateName(filename string) error {
	if filename == "" || filename == "." || filename == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(filename, `/\`) || strings.ContainsRune(filename, 0) {
		return ErrInvalidName
	}
	return nil
}
