package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dancefloor/internal/app"
	"github.com/llehouerou/dancefloor/internal/config"
	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/history"
	"github.com/llehouerou/dancefloor/internal/library"
	"github.com/llehouerou/dancefloor/internal/logging"
	"github.com/llehouerou/dancefloor/internal/notify"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/preload"
	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/selector"
	"github.com/llehouerou/dancefloor/internal/state"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := logging.OpenFile()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := logging.Setup(cfg.GetLogLevel(), logFile)

	// Must run before the speaker is initialized.
	capture, err := logging.CaptureStderr(logger)
	if err != nil {
		logger.Warn().Err(err).Msg("stderr capture unavailable")
	} else {
		defer capture.Stop()
	}

	toasts := notify.NewCollector()

	store, err := dancetree.NewStore(cfg.TreeFile)
	if err != nil {
		return fmt.Errorf("locate dance tree: %w", err)
	}
	if err := store.Load(); err != nil {
		logger.Error().Err(err).Str("path", store.Path()).Msg("dance tree unreadable, starting empty")
		_, _ = toasts.Notify(notify.Notification{
			Title:   errmsg.FormatWith(errmsg.OpTreeLoad, store.Path(), err),
			Body:    "the file is moved to " + store.BackupPath() + " on the first edit",
			Urgency: notify.UrgencyNormal,
		})
	}
	if !cfg.HasMusicDir() {
		logger.Warn().Msg("music_dir is not set in config.toml")
	}

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	notifier := notify.Multi{toasts}
	if cfg.DesktopNotificationsEnabled() {
		desktop, err := notify.New()
		if err != nil {
			logger.Warn().Err(err).Msg("desktop notifications unavailable")
		} else {
			notifier = append(notifier, desktop)
		}
	}

	session := history.New(history.WithRecorder(stateMgr), history.WithLogger(logger))
	sel := selector.New(selector.WithLogger(logger), selector.WithNotifier(notifier))

	qcfg := cfg.GetQueueConfig()
	q := queue.New(queue.Options{
		MaxItems:        qcfg.MaxItems,
		AllowDuplicates: qcfg.AllowDuplicates,
	})
	backend := player.New()

	o := orchestrator.New(q, backend, sel, store.Tree,
		orchestrator.WithPreloader(preload.New(nil)),
		orchestrator.WithHistory(session),
		orchestrator.WithNotifier(notifier),
		orchestrator.WithLogger(logger),
		orchestrator.WithTick(cfg.CountdownTick()),
		orchestrator.WithAutoQueue(qcfg.AutoQueueEnabled()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() { loopDone <- o.Run(ctx) }()

	scanner := library.New(
		library.WithCache(stateMgr),
		library.WithLogger(logger),
	)

	m := app.New(app.Deps{
		Orchestrator:    o,
		Store:           store,
		Backend:         backend,
		Toasts:          toasts,
		Session:         session,
		Scanner:         scanner,
		Logger:          logger,
		MusicDir:        cfg.MusicDir,
		Synonyms:        cfg.SynonymGroups(),
		DefaultDelay:    qcfg.DefaultDelay(),
		AllowDuplicates: qcfg.AllowDuplicates,
	})

	logger.Info().Str("session", session.ID()).Str("tree", store.Path()).Msg("starting")

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()

	cancel()
	if err := <-loopDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn().Err(err).Msg("orchestrator stopped with error")
	}
	backend.Clear()

	if store.Unreadable() {
		logger.Warn().Str("path", store.Path()).Msg("dance tree left untouched")
	} else if err := store.Save(); err != nil {
		logger.Error().Err(err).Msg("failed to save dance tree")
		if runErr == nil {
			return fmt.Errorf("save dance tree: %w", err)
		}
	}
	logger.Info().Int("played", session.Len()).Msg("session ended")
	return runErr
}
