package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gmquest/internal/game/engine"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case animationTickMsg:
		return m.handleAnimation()
	case turnResultMsg:
		return m.handleTurnResult(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleAnimation() (tea.Model, tea.Cmd) {
	if m.loading {
		m.animationFrame++
		return m, animationTimer()
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		if m.loading {
			return m, nil
		}
		input := strings.TrimSpace(m.input)
		m.input = ""
		if input == "" {
			return m, nil
		}
		return m.handleInput(input)

	case "backspace":
		if len(m.input) > 0 && !m.loading {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if len(msg.String()) == 1 && !m.loading {
			m.input += msg.String()
		}
		return m, nil
	}
}

// handleInput dispatches one line of player input. Engine commands bypass the
// backend entirely and never consume a turn; anything else is a player action
// that spends a turn even if the backend response turns out to be unusable.
func (m Model) handleInput(input string) (tea.Model, tea.Cmd) {
	m.messages = append(m.messages, "> "+input)

	switch strings.ToLower(input) {
	case "quit":
		m.messages = append(m.messages, "", "Goodbye, traveller!")
		return m, tea.Quit

	case "help":
		m.showHelp()
		return m, nil

	case "inventory":
		m.showInventory()
		return m, nil

	case "save":
		if err := m.store.Save(m.state); err != nil {
			m.messages = append(m.messages, "", "Could not save: "+err.Error(), "")
		} else {
			m.messages = append(m.messages, "", "... Game saved. ...", "")
		}
		return m, nil

	case "load":
		if loaded, ok := m.store.Load(); ok {
			m.state = loaded
			m.messages = append(m.messages, "", "... Game loaded. ...")
			if status, endMessage := m.evaluate(); status != engine.StatusOngoing {
				m.appendGameOver(status, endMessage)
			} else {
				m.gameOver = false
				m.messages = append(m.messages, m.statusLine(), "")
			}
		} else {
			m.messages = append(m.messages, "", "... No save file found. ...", "")
		}
		return m, nil
	}

	if m.gameOver {
		m.messages = append(m.messages, "", "The game is over. Type 'load' to restore a save, or 'quit' to exit.", "")
		return m, nil
	}

	// The turn is consumed now, before the backend is invoked; a failed
	// exchange still costs the turn.
	m.state.Turns++
	m.messages = append(m.messages, "")
	m.loading = true
	m.animationFrame = 0
	m.messages = append(m.messages, "LOADING_ANIMATION")

	return m, tea.Batch(runTurn(m.gm, m.rules, m.state, input, m.loggers), animationTimer())
}

func (m Model) handleTurnResult(msg turnResultMsg) (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	m.messages = m.messages[:len(m.messages)-1]
	m.loading = false

	if msg.err != nil || msg.resp == nil {
		// No atoms are applied when the response cannot be parsed, but the
		// turn stays consumed, so end conditions are still checked below.
		m.loggers.Debug.Printf("turn %d: backend failure: %v (raw: %q)", msg.turn, msg.err, msg.raw)
		if m.loggers.Debug.IsEnabled() {
			m.messages = append(m.messages, fmt.Sprintf("[ENGINE] backend failure: %v", msg.err))
		}
		m.messages = append(m.messages, "(The AI provided no narration.)", "")
		if status, endMessage := m.evaluate(); status != engine.StatusOngoing {
			m.appendGameOver(status, endMessage)
		} else {
			m.messages = append(m.messages, m.statusLine(), "")
		}
		return m, nil
	}

	newState, report := engine.ApplyRaw(m.state, msg.resp.StateChange, m.rules)
	m.state = newState

	for _, skipped := range report.Skipped {
		m.loggers.Debug.Printf("turn %d: %s", msg.turn, skipped)
	}
	if m.loggers.Debug.IsEnabled() && !report.Empty() {
		m.messages = append(m.messages, "[ENGINE] atom report:")
		for _, applied := range report.Applied {
			m.messages = append(m.messages, "[ENGINE]   "+applied)
		}
		for _, skipped := range report.Skipped {
			m.messages = append(m.messages, "[ENGINE]   skipped: "+skipped)
		}
	}

	narration := strings.TrimSpace(msg.resp.Narration)
	if narration == "" {
		narration = "(The AI provided no narration.)"
	}
	narration = engine.TrimNarration(narration, m.rules.MaxParagraphs)
	for _, paragraph := range strings.Split(narration, "\n\n") {
		m.messages = append(m.messages, paragraph, "")
	}

	if status, endMessage := m.evaluate(); status != engine.StatusOngoing {
		m.appendGameOver(status, endMessage)
	} else {
		m.messages = append(m.messages, m.statusLine(), "")
	}

	return m, nil
}

func (m Model) evaluate() (engine.Status, string) {
	return engine.Evaluate(m.state, m.rules)
}

func (m *Model) appendGameOver(status engine.Status, endMessage string) {
	m.gameOver = true
	m.messages = append(m.messages,
		fmt.Sprintf("--- GAME OVER: YOU %s! ---", strings.ToUpper(status.String())),
		endMessage,
		"",
	)
}

func (m *Model) showHelp() {
	m.messages = append(m.messages,
		"",
		"Type what you want to do (e.g. 'look at the chest', 'go to the forest').",
		"",
		"Engine commands (these never consume a turn):",
		"  help        - Show this message",
		"  inventory   - Check your items",
		"  save        - Save your game",
		"  load        - Load your last save",
		"  quit        - Exit the game",
		"",
	)
}

func (m *Model) showInventory() {
	m.messages = append(m.messages, "", "--- Inventory ---")
	if len(m.state.Inventory) == 0 {
		m.messages = append(m.messages, "  (empty)")
	} else {
		for _, item := range m.state.Inventory {
			m.messages = append(m.messages, "  * "+item)
		}
	}
	m.messages = append(m.messages, "")
}

func (m Model) statusLine() string {
	line := fmt.Sprintf("---[ HP: %d | Location: %s | Turn: %d/%d ]---",
		m.state.HP, m.state.Location, m.state.Turns, m.rules.EndConditions.MaxTurns)
	if m.rules.Quest.Name != "" {
		line += fmt.Sprintf("  Quest: %s (%s)", m.rules.Quest.Name, m.rules.Quest.GoalFlag)
	}
	return line
}
