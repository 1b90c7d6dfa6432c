package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"snipman/internal/app"
	"snipman/internal/config"
	"snipman/internal/domain"
	"snipman/internal/eventbus"
	"snipman/internal/eventloop"
	"snipman/internal/help"
	"snipman/internal/input"
	"snipman/internal/input/types"
	"snipman/internal/logger"
	"snipman/internal/state"
	"snipman/internal/store"
	"snipman/internal/terminal"
	"snipman/internal/view"
)

// eventBuffer bounds how far input may run ahead of the consumer
const eventBuffer = 64

// exampleSnippets are added by --seed to an empty store
func exampleSnippets() []domain.Snippet {
	return []domain.Snippet{
		domain.NewSnippet("git log --oneline --graph --all", "compact history of every branch", "git"),
		domain.NewSnippet("tar -xzf archive.tar.gz", "extract a gzipped tarball", ""),
		domain.NewSnippet("docker ps --format '{{.Names}}'", "names of running containers", "docker"),
	}
}

// runTUI runs the interactive browser until the user quits or ctx is cancelled
func runTUI(ctx context.Context, cfg *config.Config) error {
	log, closeLog, err := logger.NewFile(cfg.LogFile(), cfg.Log.Level,
		logger.VersionKey, Version,
		logger.CommandKey, "tui",
	)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()
	ctx = logger.WithLogger(ctx, log)

	s, appState, err := openState(ctx, cfg)
	if err != nil {
		log.Error(err, "failed to load snippets")
		return err
	}
	defer s.Close()

	bus := eventbus.New(log)
	if cfg.UI.Autosave {
		autosaver := app.NewAutosaver(s, bus, log)
		defer autosaver.Stop()
	}
	notices := app.NewNotices(bus, log)
	defer notices.Stop()

	term, err := terminal.Open(os.Stdin, os.Stdout, log)
	if err != nil {
		bus.Close()
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	executor := app.NewExecutor(appState, bus, app.SystemClipboard{}, help.NewPager(term, types.Keys), log)
	if appState.Len() == 0 && cfg.UI.Seed {
		for _, snippet := range exampleSnippets() {
			if err := executor.ExecuteAdd(snippet); err != nil {
				log.Error(err, "failed to seed snippets")
			}
		}
	}

	loopErr := runLoop(ctx, cfg, term, term.Reader, appState, executor, notices)

	// drain in-flight autosaves before the final write
	bus.Close()
	if err := store.SaveState(context.WithoutCancel(ctx), s, appState); err != nil {
		log.Error(err, "final save failed")
		return errors.Join(loopErr, err)
	}
	log.Info("exiting", "count", appState.Len())

	if errors.Is(loopErr, context.Canceled) {
		return nil
	}
	return loopErr
}

// runLoop wires source to the consumer loop and blocks until the consumer
// stops. The terminal is closed before runLoop returns, whatever the reason.
func runLoop(ctx context.Context, cfg *config.Config, term *terminal.Terminal, source eventloop.Source, appState *state.AppState, executor *app.Executor, notices *app.Notices) error {
	log := logger.FromContext(ctx)
	defer func() {
		if err := term.Close(); err != nil {
			log.Error(err, "failed to restore terminal")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dispatcher := app.NewDispatcher(appState, executor, input.Transition, log)
	frame := app.NewFrame(appState, view.NewRenderer(types.Keys), term.Screen, term, notices)
	loop := eventloop.NewLoop(dispatcher, frame, log)
	producer := eventloop.NewProducer(source, cfg.TickInterval, eventloop.WithLogger(log))

	events := make(chan eventloop.Event, eventBuffer)
	producerDone := make(chan error, 1)
	go func() {
		producerDone <- producer.Run(ctx, events)
	}()

	err := loop.Run(ctx, events)
	cancel()
	if perr := <-producerDone; perr != nil && !errors.Is(perr, context.Canceled) {
		log.V(1).Info("producer stopped", "error", perr.Error())
	}
	return err
}
