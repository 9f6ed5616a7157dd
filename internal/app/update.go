package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/dancefloor/internal/config"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/library"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/ui/confirm"
	"github.com/llehouerou/dancefloor/internal/ui/headerbar"
	"github.com/llehouerou/dancefloor/internal/ui/layout"
	"github.com/llehouerou/dancefloor/internal/ui/playerbar"
	"github.com/llehouerou/dancefloor/internal/ui/prompt"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StatusMsg:
		m.applyStatus(orchestrator.Status(msg))
		m.drainNotifications()
		return m, m.watchStatus()

	case OrchestratorErrorMsg:
		// the user sees these through the notification collector
		m.deps.Logger.Warn().Err(msg.Err).Msg(msg.Message)
		m.drainNotifications()
		return m, m.watchErrors()

	case OrchestratorClosedMsg:
		m.closed = true
		return m, tea.Quit

	case TickMsg:
		m.now = time.Time(msg)
		m.drainNotifications()
		m.expireToasts()
		return m, TickCmd()

	case TreeRowsMsg:
		m.dances.SetRows(msg.Rows)
		if msg.Assigned != nil {
			m.unassigned = msg.Assigned.Unassigned
		}
		if msg.SaveErr != nil {
			m.pushError(errmsg.OpTreeSave, m.deps.Store.Path(), msg.SaveErr)
		}
		return m, nil

	case OpErrorMsg:
		m.pushError(msg.Op, msg.Context, msg.Err)
		return m, nil

	case InfoMsg:
		m.pushToast(string(msg), toastInfo)
		return m, nil

	case prompt.Result:
		return m.handlePromptResult(msg)

	case confirm.Result:
		return m.handleConfirmResult(msg)

	case startScanMsg:
		return m.handleStartScan()

	case scanProgressMsg:
		if !msg.ok {
			return m, msg.job.waitDone()
		}
		m.scanProgress = msg.progress
		return m, msg.job.waitProgress()

	case LibraryScanCompleteMsg:
		m.scanning = false
		if msg.Err != nil {
			m.pushError(errmsg.OpLibraryScan, m.deps.MusicDir, msg.Err)
			return m, nil
		}
		m.library, m.libraryLoaded = msg.Result.Tracks, true
		return m, m.assignTracksCmd(msg.Result.Tracks)

	case TracksAssignedMsg:
		return m.handleTracksAssigned(msg)
	}

	// cursor blink and other input messages
	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyStatus(st orchestrator.Status) {
	m.status = st
	m.queue.SetItems(st.Items)
}

func (m *Model) resize() {
	bodyHeight := m.bodyHeight()
	p := layout.Split(m.width, bodyHeight)
	m.dances.SetSize(p.Dances.Width, p.Dances.Height)
	m.queue.SetSize(p.Queue.Width, p.Queue.Height)
	m.help.SetSize(m.width, bodyHeight)
}

func (m Model) bodyHeight() int {
	return layout.BodyHeight(m.height, headerbar.Height, playerbar.Height)
}

func (m Model) handleStartScan() (tea.Model, tea.Cmd) {
	if m.scanning {
		return m, nil
	}
	if err := config.CheckMusicDir(m.deps.MusicDir); err != nil {
		m.deps.Logger.Warn().Err(err).Str("dir", m.deps.MusicDir).Msg("library scan skipped")
		m.pushError(errmsg.OpLibraryScan, m.deps.MusicDir, err)
		return m, nil
	}
	if m.deps.Scanner == nil {
		return m, nil
	}
	m.scanning = true
	m.scanProgress = library.ScanProgress{Phase: "scanning"}
	return m, m.startScan()
}

func (m Model) handleTracksAssigned(msg TracksAssignedMsg) (tea.Model, tea.Cmd) {
	m.tracks = msg.Tracks
	m.unassigned = msg.Result.Unassigned
	m.dances.SetRows(msg.Rows)

	for dance, n := range msg.Result.Missing {
		m.deps.Logger.Info().Str("dance", dance).Int("tracks", n).Msg("no leaf for dance")
	}

	text := fmt.Sprintf("%s tracks assigned", humanize.Comma(int64(msg.Result.Assigned)))
	if msg.Result.Unassigned > 0 {
		text += fmt.Sprintf(", %s without a dance in the tree", humanize.Comma(int64(msg.Result.Unassigned)))
	}
	m.pushToast(text, toastInfo)
	return m, nil
}
