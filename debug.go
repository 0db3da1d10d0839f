package polymesh

import (
	"fmt"
	"io"
	"os"
)

// debugOut receives debug output. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, setup, phase
// boundaries, rotation windows and per-frame draw stats are logged to
// stderr.
func (m *Mesh) SetDebugMode(enabled bool) {
	m.debug = enabled
}

func (m *Mesh) debugEnabled() bool {
	return m.debug
}

// logf prints a prefixed debug line. Callers check m.debug first.
func (m *Mesh) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[polymesh] "+format+"\n", args...)
}

// debugLog prints the stats of one renderer pass.
func (m *Mesh) debugLog(stats FrameStats) {
	if !m.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[polymesh] draw: %v | commands: %d | lines: %d | fills: %d (gradient %d) | dots: %d | labels: %d\n",
		stats.Duration, stats.Commands, stats.Lines, stats.Fills, stats.Gradients, stats.Dots, stats.Labels)
	if stats.Culled > 0 || stats.Skipped > 0 {
		_, _ = fmt.Fprintf(debugOut, "[polymesh] culled nodes: %d | skipped non-finite: %d\n",
			stats.Culled, stats.Skipped)
	}
}
