package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/muurk/edtable/internal/config"
	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/table"
	"go.uber.org/zap"
)

// Tool names
const (
	ToolGetTable = "get_table"
	ToolEditCell = "edit_cell"
	ToolSave     = "save_table"
	ToolDiscard  = "discard_edits"
)

// Config holds the agent binding configuration
type Config struct {
	Name    string
	Version string

	// Args are the mount arguments of the single widget instance
	Args *config.Args
	// Sink receives the widget's reports (may be nil)
	Sink host.Host
}

// Server exposes one widget instance as MCP tools. Tool calls may arrive
// concurrently; the controller is guarded by mu.
type Server struct {
	mu       sync.Mutex
	ctrl     *table.Controller
	recorder *host.Recorder
	mcp      *server.MCPServer
}

// Table is the get_table result.
type Table struct {
	// Value is the committed grid, the widget's reported value
	Value grid.Grid `json:"value"`
	// Display is the grid with pending edits applied
	Display grid.Grid `json:"display"`
	// Pending lists the unsaved edits
	Pending []Edit `json:"pending"`
	// Editable lists the header values whose cells accept edits
	Editable []string `json:"editable_columns"`
	Disabled bool     `json:"disabled"`
}

// Edit is one pending cell edit.
type Edit struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// New mounts the widget and registers its tools.
func New(cfg Config) *Server {
	args := cfg.Args
	if args == nil {
		args = &config.Args{}
	}

	s := &Server{recorder: &host.Recorder{}}
	hosts := host.Multi{s.recorder}
	if cfg.Sink != nil {
		hosts = append(hosts, cfg.Sink)
	}
	s.ctrl = table.New(host.Logged{Next: hosts, Label: "agent"}, args.Options(table.DefaultMeasure))

	s.mcp = server.NewMCPServer(cfg.Name, cfg.Version, server.WithToolCapabilities(false))
	s.mcp.AddTool(mcp.NewTool(ToolGetTable,
		mcp.WithDescription("Return the table: the saved value, the displayed grid with unsaved edits, the pending edits and the editable columns. Row 0 is the header."),
	), s.handleGetTable)
	s.mcp.AddTool(mcp.NewTool(ToolEditCell,
		mcp.WithDescription("Change one cell. The edit stays pending until save_table is called. Header cells and cells outside the editable columns are rejected."),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Zero-based row index; row 0 is the header")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("Zero-based column index")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New cell text")),
	), s.handleEditCell)
	s.mcp.AddTool(mcp.NewTool(ToolSave,
		mcp.WithDescription("Save all pending edits and report the table as the new value."),
	), s.handleSave)
	s.mcp.AddTool(mcp.NewTool(ToolDiscard,
		mcp.WithDescription("Drop all pending edits."),
	), s.handleDiscard)

	return s
}

// ServeStdio serves the tools over stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	logging.Info("Serving MCP tools over stdio")
	if err := server.ServeStdio(s.mcp); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Snapshot returns the current table state.
func (s *Server) Snapshot() Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() Table {
	pending := s.ctrl.Pending()
	edits := make([]Edit, 0, len(pending))
	for c, v := range pending {
		edits = append(edits, Edit{Row: c.Row, Col: c.Col, Value: v})
	}
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Row != edits[j].Row {
			return edits[i].Row < edits[j].Row
		}
		return edits[i].Col < edits[j].Col
	})

	var editable []string
	for col, name := range grid.Header(s.ctrl.Committed()) {
		if s.ctrl.Editable(1, col) {
			editable = append(editable, name)
		}
	}

	return Table{
		Value:    s.recorder.LastValue(),
		Display:  s.ctrl.Resolved(),
		Pending:  edits,
		Editable: editable,
		Disabled: s.ctrl.Disabled(),
	}
}

func (s *Server) handleGetTable(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.Snapshot())
}

func (s *Server) handleEditCell(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	row, err := req.RequireInt("row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := req.RequireInt("col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctrl.Editable(row, col) {
		logging.Debug("Rejected edit of read-only cell", zap.Int("row", row), zap.Int("col", col))
		return mcp.NewToolResultError(fmt.Sprintf("cell %d-%d is not editable", row, col)), nil
	}
	if _, ok := s.ctrl.Committed().Cell(grid.Coord{Row: row, Col: col}); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("cell %d-%d does not exist", row, col)), nil
	}

	s.ctrl.RecordEdit(row, col, value)
	return mcp.NewToolResultText(fmt.Sprintf("cell %d-%d set; %d unsaved edit(s)", row, col, len(s.ctrl.Pending()))), nil
}

func (s *Server) handleSave(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctrl.Commit() {
		return mcp.NewToolResultError("table is read-only"), nil
	}
	return jsonResult(s.snapshotLocked())
}

func (s *Server) handleDiscard(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.ctrl.Pending())
	s.ctrl.Discard()
	return mcp.NewToolResultText(fmt.Sprintf("discarded %d edit(s)", n)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
