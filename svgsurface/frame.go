package svgsurface

import (
	"fmt"
	"image/color"
	"io"

	"github.com/phanxgames/polymesh"
)

// Frame is a polymesh.FrameEncoder that draws the mesh's current state into
// a standalone SVG document.
type Frame struct {
	Mesh       *polymesh.Mesh
	Background color.Color
}

// Ext implements polymesh.FrameEncoder.
func (f Frame) Ext() string {
	return "svg"
}

// Encode implements polymesh.FrameEncoder.
func (f Frame) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	cfg := f.Mesh.Config()
	s := New(ew, int(cfg.Width), int(cfg.Height))
	s.Background = f.Background
	f.Mesh.Draw(s)
	s.Close()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// errWriter keeps the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
