package host

import (
	"sync"

	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/logging"
	"go.uber.org/zap"
)

// Host is the output side of a widget: the committed value and the frame
// height. It has the same method set as table.Host.
type Host interface {
	SetValue(g grid.Grid)
	SetFrameHeight(height int)
}

// Recorder keeps every report it receives. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	Values  []grid.Grid
	Heights []int
}

// SetValue implements Host.
func (r *Recorder) SetValue(g grid.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Values = append(r.Values, grid.Clone(g))
}

// SetFrameHeight implements Host.
func (r *Recorder) SetFrameHeight(height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Heights = append(r.Heights, height)
}

// LastValue returns the most recent value, or nil if none was reported.
func (r *Recorder) LastValue() grid.Grid {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Values) == 0 {
		return nil
	}
	return grid.Clone(r.Values[len(r.Values)-1])
}

// LastHeight returns the most recent frame height, or 0.
func (r *Recorder) LastHeight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Heights) == 0 {
		return 0
	}
	return r.Heights[len(r.Heights)-1]
}

// Funcs adapts a pair of functions to Host. Nil functions are skipped.
type Funcs struct {
	Value       func(g grid.Grid)
	FrameHeight func(height int)
}

// SetValue implements Host.
func (f Funcs) SetValue(g grid.Grid) {
	if f.Value != nil {
		f.Value(g)
	}
}

// SetFrameHeight implements Host.
func (f Funcs) SetFrameHeight(height int) {
	if f.FrameHeight != nil {
		f.FrameHeight(height)
	}
}

// Multi fans every report out to each host in order. Nil entries are skipped.
type Multi []Host

// SetValue implements Host.
func (m Multi) SetValue(g grid.Grid) {
	for _, h := range m {
		if h != nil {
			h.SetValue(grid.Clone(g))
		}
	}
}

// SetFrameHeight implements Host.
func (m Multi) SetFrameHeight(height int) {
	for _, h := range m {
		if h != nil {
			h.SetFrameHeight(height)
		}
	}
}

// Logged wraps a host and logs each report.
type Logged struct {
	Next  Host
	Label string
}

// SetValue implements Host.
func (l Logged) SetValue(g grid.Grid) {
	logging.Debug("Value reported",
		zap.String("host", l.Label),
		zap.Int("rows", len(g)),
		zap.Int("columns", g.Columns()),
	)
	if l.Next != nil {
		l.Next.SetValue(g)
	}
}

// SetFrameHeight implements Host.
func (l Logged) SetFrameHeight(height int) {
	logging.Debug("Frame height reported",
		zap.String("host", l.Label),
		zap.Int("height", height),
	)
	if l.Next != nil {
		l.Next.SetFrameHeight(height)
	}
}
