package host

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/logging"
	"go.uber.org/zap"
)

// Message types shared by the JSON lines stream and the websocket protocol.
const (
	TypeValue       = "value"
	TypeFrameHeight = "frameHeight"
)

// ValueMessage carries a reported value.
type ValueMessage struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// FrameHeightMessage carries a reported frame height.
type FrameHeightMessage struct {
	Type   string `json:"type"`
	Height int    `json:"height"`
}

// JSONLines writes one JSON object per report to w. When a filter is set,
// each value is passed through it and every result is written as its own
// value line.
type JSONLines struct {
	mu     sync.Mutex
	enc    *json.Encoder
	filter Filter
}

// NewJSONLines returns a JSONLines host writing to w. query is an optional
// jq expression.
func NewJSONLines(w io.Writer, query string) (*JSONLines, error) {
	var filter Filter
	if query != "" {
		var err error
		if filter, err = JQFilter(query); err != nil {
			return nil, err
		}
	}
	return NewJSONLinesFilter(w, filter), nil
}

// NewJSONLinesFilter returns a JSONLines host writing to w through filter,
// which may be nil.
func NewJSONLinesFilter(w io.Writer, filter Filter) *JSONLines {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLines{enc: enc, filter: filter}
}

// SetValue implements Host. Write and query errors are logged, not returned:
// reports are fire-and-forget.
func (j *JSONLines) SetValue(g grid.Grid) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.filter == nil {
		j.write(ValueMessage{Type: TypeValue, Value: g})
		return
	}

	results, err := j.filter(g)
	if err != nil {
		logging.Warn("Value filter failed", zap.Error(err))
		return
	}
	for _, v := range results {
		j.write(ValueMessage{Type: TypeValue, Value: v})
	}
}

// SetFrameHeight implements Host.
func (j *JSONLines) SetFrameHeight(height int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.write(FrameHeightMessage{Type: TypeFrameHeight, Height: height})
}

func (j *JSONLines) write(msg any) {
	if err := j.enc.Encode(msg); err != nil {
		logging.Warn("Failed to write report", zap.Error(err))
	}
}
