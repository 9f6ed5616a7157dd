// Package app contains the root bubbletea model of the terminal UI.
package app

import (
	"time"

	"github.com/llehouerou/dancefloor/internal/assign"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/library"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/ui/dancepanel"
)

// StatusMsg carries a new orchestrator snapshot.
type StatusMsg orchestrator.Status

// OrchestratorErrorMsg carries an error reported by the event loop.
type OrchestratorErrorMsg orchestrator.ErrorEvent

// OrchestratorClosedMsg is sent once the event loop has stopped.
type OrchestratorClosedMsg struct{}

// TickMsg is sent every second to refresh the track position.
type TickMsg time.Time

// TreeRowsMsg replaces the rows of the dance panel. SaveErr is set when
// an edit was applied but the tree file could not be written. Assigned is
// set when scanned tracks were assigned again after the edit.
type TreeRowsMsg struct {
	Rows     []dancepanel.Row
	SaveErr  error
	Assigned *assign.Result
}

// OpErrorMsg reports a failed user operation.
type OpErrorMsg struct {
	Op      errmsg.Op
	Context string
	Err     error
}

// InfoMsg shows a short informational toast.
type InfoMsg string

// LibraryScanCompleteMsg is sent when a scan ends.
type LibraryScanCompleteMsg struct {
	Result *library.ScanResult
	Err    error
}

// TracksAssignedMsg is sent once scanned tracks are attached to the tree.
type TracksAssignedMsg struct {
	Tracks int
	Result assign.Result
	Rows   []dancepanel.Row
}
