package polymesh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FrameEncoder writes one rendered frame in a file format.
type FrameEncoder interface {
	// Ext is the file extension without the dot, such as "png".
	Ext() string
	Encode(w io.Writer) error
}

// Exporter writes numbered, labeled frames into a directory as
// <Dir>/<Prefix>_<NNNN>_<label>.<ext>.
type Exporter struct {
	// Dir receives the frames. It is created on the first write.
	Dir string
	// Prefix starts every file name. Empty means "frame".
	Prefix string

	count int
}

// NewExporter returns an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Count returns the number of frames written.
func (e *Exporter) Count() int {
	return e.count
}

// Capture encodes one frame and returns the path it was written to. The
// frame number only advances on success.
func (e *Exporter) Capture(enc FrameEncoder, label string) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("capture: mkdir %s: %w", e.Dir, err)
	}
	prefix := e.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	name := fmt.Sprintf("%s_%04d_%s.%s", sanitizeLabel(prefix), e.count, sanitizeLabel(label), enc.Ext())
	path := filepath.Join(e.Dir, name)
	if err := writeFrame(path, enc); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	e.count++
	return path, nil
}

// writeFrame encodes a frame to a file at the given path.
func writeFrame(path string, enc FrameEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := enc.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
