package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dancefloor/internal/assign"
	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/library"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/ui/dancepanel"
)

// startScanMsg asks Update to start a library scan.
type startScanMsg struct{}

// scanJob connects a running scan to the UI.
type scanJob struct {
	progress chan library.ScanProgress
	done     chan LibraryScanCompleteMsg
}

type scanProgressMsg struct {
	job      *scanJob
	progress library.ScanProgress
	ok       bool
}

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// watchStatus waits for the next status snapshot or the end of the loop.
func (m Model) watchStatus() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case st := <-sub.StatusChanged:
			return StatusMsg(st)
		case <-sub.Done:
			return OrchestratorClosedMsg{}
		}
	}
}

// watchErrors waits for the next error event.
func (m Model) watchErrors() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return OrchestratorErrorMsg(e)
		case <-sub.Done:
			return nil
		}
	}
}

// run executes fn off the UI goroutine. Rejections are reported by the
// loop itself, so only a stopped loop becomes an OpErrorMsg.
func run(op errmsg.Op, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); errors.Is(err, orchestrator.ErrStopped) {
			return OpErrorMsg{Op: op, Err: err}
		}
		return nil
	}
}

// loadRowsCmd flattens the dance tree on the orchestrator loop.
func (m Model) loadRowsCmd() tea.Cmd {
	o := m.deps.Orchestrator
	return func() tea.Msg {
		var rows []dancepanel.Row
		err := o.Do(context.Background(), func() {
			rows = dancepanel.Flatten(m.deps.Store.Tree())
		})
		if err != nil {
			return OpErrorMsg{Op: errmsg.OpTreeLoad, Err: err}
		}
		return TreeRowsMsg{Rows: rows}
	}
}

// editTreeCmd applies edit to the tree on the orchestrator loop, saves the
// tree file and refreshes the dance panel.
func (m Model) editTreeCmd(op errmsg.Op, edit func(*dancetree.Tree) error) tea.Cmd {
	return m.treeEditCmd(op, edit, false)
}

// reshapeTreeCmd is editTreeCmd for edits that add, rename or remove
// nodes. Scanned tracks are assigned again since dance names changed.
func (m Model) reshapeTreeCmd(op errmsg.Op, edit func(*dancetree.Tree) error) tea.Cmd {
	return m.treeEditCmd(op, edit, m.libraryLoaded)
}

func (m Model) treeEditCmd(op errmsg.Op, edit func(*dancetree.Tree) error, reassign bool) tea.Cmd {
	o, store := m.deps.Orchestrator, m.deps.Store
	tracks, synonyms, logger := m.library, m.deps.Synonyms, m.deps.Logger
	return func() tea.Msg {
		var msg TreeRowsMsg
		err := o.EditTree(context.Background(), func(t *dancetree.Tree) error {
			if err := edit(t); err != nil {
				return err
			}
			if reassign {
				res := assign.Rebuild(t, synonyms, tracks, logger)
				msg.Assigned = &res
			}
			msg.SaveErr = store.Save()
			msg.Rows = dancepanel.Flatten(t)
			return nil
		})
		if errors.Is(err, orchestrator.ErrStopped) {
			return OpErrorMsg{Op: op, Err: err}
		}
		if err != nil {
			// already reported by the loop
			return nil
		}
		return msg
	}
}

// startScan launches a scan of the music directory in the background.
func (m Model) startScan() tea.Cmd {
	job := &scanJob{
		progress: make(chan library.ScanProgress, 16),
		done:     make(chan LibraryScanCompleteMsg, 1),
	}
	scanner, root := m.deps.Scanner, m.deps.MusicDir
	go func() {
		res, err := scanner.Scan(context.Background(), root, job.progress)
		job.done <- LibraryScanCompleteMsg{Result: res, Err: err}
	}()
	return job.waitProgress()
}

func (j *scanJob) waitProgress() tea.Cmd {
	return waitForChannel(j.progress, func(p library.ScanProgress, ok bool) tea.Msg {
		return scanProgressMsg{job: j, progress: p, ok: ok}
	})
}

func (j *scanJob) waitDone() tea.Cmd {
	return waitForChannel(j.done, func(msg LibraryScanCompleteMsg, _ bool) tea.Msg {
		return msg
	})
}

// assignTracksCmd attaches scanned tracks to the tree leaves.
func (m Model) assignTracksCmd(tracks []dancetree.TrackRef) tea.Cmd {
	o, synonyms, logger := m.deps.Orchestrator, m.deps.Synonyms, m.deps.Logger
	return func() tea.Msg {
		var msg TracksAssignedMsg
		err := o.EditTree(context.Background(), func(t *dancetree.Tree) error {
			msg.Result = assign.Rebuild(t, synonyms, tracks, logger)
			msg.Rows = dancepanel.Flatten(t)
			return nil
		})
		if err != nil {
			return OpErrorMsg{Op: errmsg.OpLibraryAssign, Err: err}
		}
		msg.Tracks = len(tracks)
		return msg
	}
}
