package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ContentType declared on uploaded reports. The payload is CSV; the declared
// type is kept as text/markdown so existing consumers of the container see
// no change.
const ContentType = "text/markdown"

// BlobStore is one object storage backend.
type BlobStore interface {
	// Put writes data to container/name, overwriting an existing object.
	Put(ctx context.Context, container, name string, data []byte, contentType string) error
	URL(container, name string) string
}

// SinkError wraps a failed parse, upload or local write.
type SinkError struct {
	Op   string // parse | upload | local
	Blob string
	Err  error
}

func (e *SinkError) Error() string {
	if e.Blob != "" {
		return fmt.Sprintf("sink %s %s: %v", e.Op, e.Blob, e.Err)
	}
	return fmt.Sprintf("sink %s: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// Sink implements probes.ReportSink.
type Sink struct {
	Store     BlobStore
	Container string
	LocalDir  string
	Log       zerolog.Logger
}

// Upload stores the report under filename and returns its URL. A Sink without
// store or container uploads nothing and returns "" with a nil error.
func (s *Sink) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if s.LocalDir != "" {
		if err := s.writeLocal(data, filename); err != nil {
			return "", err
		}
	}

	if s.Store == nil || s.Container == "" {
		s.Log.Debug().Str("blob", filename).Msg("storage not configured, skipping upload")
		return "", nil
	}

	if err := s.Store.Put(ctx, s.Container, filename, data, ContentType); err != nil {
		return "", &SinkError{Op: "upload", Blob: filename, Err: err}
	}
	url := s.Store.URL(s.Container, filename)
	s.Log.Debug().Str("url", url).Msg("blob uploaded")
	return url, nil
}

func (s *Sink) writeLocal(data []byte, filename string) error {
	if err := os.MkdirAll(s.LocalDir, 0o755); err != nil {
		return &SinkError{Op: "local", Blob: filename, Err: err}
	}
	path := filepath.Join(s.LocalDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &SinkError{Op: "local", Blob: filename, Err: err}
	}
	s.Log.Debug().Str("path", path).Msg("call log written locally")
	return nil
}
