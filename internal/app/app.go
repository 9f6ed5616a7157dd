package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/dancefloor/internal/assign"
	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/history"
	"github.com/llehouerou/dancefloor/internal/keymap"
	"github.com/llehouerou/dancefloor/internal/library"
	"github.com/llehouerou/dancefloor/internal/notify"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/ui/confirm"
	"github.com/llehouerou/dancefloor/internal/ui/dancepanel"
	"github.com/llehouerou/dancefloor/internal/ui/helpbindings"
	"github.com/llehouerou/dancefloor/internal/ui/prompt"
	"github.com/llehouerou/dancefloor/internal/ui/queuepanel"
)

// undoDepth is the number of tree edits kept for undo.
const undoDepth = 100

// FocusTarget identifies which panel receives panel-scoped keys.
type FocusTarget int

const (
	FocusDances FocusTarget = iota
	FocusQueue
)

// Deps are the services the UI drives. Orchestrator, Store and Backend
// are required.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Store        *dancetree.Store
	Backend      player.Backend
	Toasts       *notify.Collector
	Session      *history.Session
	Scanner      *library.Scanner
	Logger       zerolog.Logger

	MusicDir        string
	Synonyms        []assign.SynonymGroup
	DefaultDelay    time.Duration
	AllowDuplicates bool
	Now             func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	deps     Deps
	resolver *keymap.Resolver
	treeHist *dancetree.History
	sub      *orchestrator.Subscription

	status     orchestrator.Status
	duplicates bool
	focus      FocusTarget

	dances  dancepanel.Model
	queue   queuepanel.Model
	help    helpbindings.Model
	prompt  prompt.Model
	confirm confirm.Model

	showHelp bool
	toasts   []toast

	scanning     bool
	scanProgress library.ScanProgress
	tracks       int
	unassigned   int

	// library holds the tracks of the last scan, assigned again whenever
	// dance names change.
	library       []dancetree.TrackRef
	libraryLoaded bool

	width, height int
	now           time.Time
	closed        bool
}

// New creates the root model. The orchestrator loop must already be
// running or about to run.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	m := Model{
		deps:       deps,
		resolver:   keymap.NewResolver(keymap.Bindings),
		treeHist:   dancetree.NewHistory(undoDepth),
		sub:        deps.Orchestrator.Subscribe(),
		status:     deps.Orchestrator.Status(),
		duplicates: deps.AllowDuplicates,
		dances:     dancepanel.New(),
		queue:      queuepanel.New(),
		help:       helpbindings.New(),
		prompt:     prompt.New(),
		confirm:    confirm.New(),
		now:        deps.Now(),
	}
	m.applyFocus()
	return m
}

// Init loads the dance tree, starts watching the orchestrator and scans
// the music directory.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadRowsCmd(),
		m.watchStatus(),
		m.watchErrors(),
		TickCmd(),
		func() tea.Msg { return startScanMsg{} },
	)
}

// Focus returns the focused panel.
func (m Model) Focus() FocusTarget {
	return m.focus
}

func (m *Model) applyFocus() {
	m.dances.SetFocused(m.focus == FocusDances)
	m.queue.SetFocused(m.focus == FocusQueue)
}

func (m Model) focusContext() string {
	if m.focus == FocusQueue {
		return keymap.ContextQueue
	}
	return keymap.ContextDances
}
