package main

import (
	"context"
	"fmt"
	"os"

	"gmquest/cmd/game/ui"
	"gmquest/internal/config"
	"gmquest/internal/debug"
	"gmquest/internal/game"
	"gmquest/internal/game/session"
	"gmquest/internal/llm"
	"gmquest/internal/logging"
	"gmquest/internal/observability"
)

// createApp wires every component. A missing rules file or GM prompt is fatal
// here, before any state exists; everything after startup is recoverable.
func createApp() (ui.Model, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	debugLogger := debug.NewLogger(cfg.Debug)

	ctx := context.Background()
	tracingConfig := observability.LoadConfigFromEnv()
	tracerProvider, err := observability.InitTracing(ctx, tracingConfig)
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}

	rules, err := game.LoadRules(cfg.RulesPath)
	if err != nil {
		return ui.Model{}, nil, err
	}

	promptData, err := os.ReadFile(cfg.GMPromptPath)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to read GM prompt %s: %w", cfg.GMPromptPath, err)
	}

	transcript, err := logging.NewTranscriptLogger(cfg.TranscriptDB)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to initialize transcript logger: %w", err)
	}
	debugLogger.Printf("Session %s, transcript at %s", transcript.SessionID(), cfg.TranscriptDB)

	service := llm.NewService(cfg.BaseURL, cfg.APIKey, cfg.Model, debugLogger)
	gm := llm.NewGM(service, string(promptData))

	store := session.NewStore(cfg.SavePath, debugLogger)
	state, restored := store.Load()
	if restored {
		debugLogger.Printf("Restored save: location=%s, hp=%d, turn=%d", state.Location, state.HP, state.Turns)
	} else {
		state = rules.Start.Clone()
		state.Turns = 0
		debugLogger.Printf("Fresh session: location=%s, hp=%d", state.Location, state.HP)
	}

	loggers := ui.GameLoggers{
		Debug:      debugLogger,
		Transcript: transcript,
	}
	model := ui.NewModel(gm, rules, state, store, loggers, restored)

	cleanup := func() {
		transcript.Close()
		if tracerProvider != nil {
			tracerProvider.Shutdown(context.Background())
		}
	}

	return model, cleanup, nil
}
