package state

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/scanme/authflow/internal/verification/entity"
)

// File is a Store backed by a JSON file, surviving process restarts on a
// single machine. The file is written with mode 0600 since it holds tokens.
type File struct {
	mu   sync.Mutex
	path string
}

type fileDoc struct {
	Session entity.Session    `json:"session"`
	Tokens  map[string]string `json:"verification_tokens,omitempty"`
}

// NewFile creates a file-backed store at the given path. The parent directory
// is created if missing.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &File{path: path}, nil
}

func (f *File) Establish(_ context.Context, s entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update(func(doc *fileDoc) { doc.Session = s })
}

func (f *File) Load(_ context.Context) (entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return entity.Session{}, err
	}
	return doc.Session, nil
}

func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update(func(doc *fileDoc) { doc.Session = entity.Session{} })
}

func (f *File) StashVerificationToken(_ context.Context, p entity.Purpose, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update(func(doc *fileDoc) {
		if doc.Tokens == nil {
			doc.Tokens = make(map[string]string)
		}
		doc.Tokens[p.String()] = token
	})
}

func (f *File) VerificationToken(_ context.Context, p entity.Purpose) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", err
	}
	return doc.Tokens[p.String()], nil
}

func (f *File) ClearVerificationToken(_ context.Context, p entity.Purpose) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update(func(doc *fileDoc) { delete(doc.Tokens, p.String()) })
}

func (f *File) read() (fileDoc, error) {
	var doc fileDoc

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, err
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt state file is discarded rather than blocking sign-in.
		return fileDoc{}, nil
	}
	return doc, nil
}

func (f *File) update(mutate func(*fileDoc)) error {
	doc, err := f.read()
	if err != nil {
		return err
	}

	mutate(&doc)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
