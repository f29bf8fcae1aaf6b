package ui

import (
	"gmquest/internal/debug"
	"gmquest/internal/game"
	"gmquest/internal/game/engine"
	"gmquest/internal/game/session"
	"gmquest/internal/llm"
	"gmquest/internal/logging"
)

type GameLoggers struct {
	Debug      *debug.Logger
	Transcript *logging.TranscriptLogger
}

type Model struct {
	messages       []string
	input          string
	width          int
	height         int
	gm             *llm.GM
	rules          *game.Rules
	state          game.State
	store          *session.Store
	loggers        GameLoggers
	loading        bool
	animationFrame int
	gameOver       bool
}

func NewModel(
	gm *llm.GM,
	rules *game.Rules,
	state game.State,
	store *session.Store,
	loggers GameLoggers,
	restored bool,
) Model {
	m := Model{
		gm:      gm,
		rules:   rules,
		state:   state,
		store:   store,
		loggers: loggers,
	}

	if restored {
		m.messages = append(m.messages, "... Game loaded from save. ...")
	} else {
		m.messages = append(m.messages, "... Starting new game. ...")
	}
	m.messages = append(m.messages, "")
	if rules.Quest.Name != "" {
		m.messages = append(m.messages, "Quest: "+rules.Quest.Name)
	}
	if rules.Quest.Intro != "" {
		m.messages = append(m.messages, rules.Quest.Intro)
	}
	m.messages = append(m.messages, "")

	// A restored save can already be terminal.
	if status, endMessage := engine.Evaluate(m.state, m.rules); status != engine.StatusOngoing {
		m.appendGameOver(status, endMessage)
	} else {
		m.messages = append(m.messages, m.statusLine(), "")
	}

	if loggers.Debug.IsEnabled() {
		m.messages = append(m.messages, "[ENGINE] debug diagnostics enabled", "")
	}

	return m
}
