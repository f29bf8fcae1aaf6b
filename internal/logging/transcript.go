// Package logging persists the append-only session transcript: one row per
// turn with the raw player input and the raw, pre-validation backend response.
// The engine never reads it back; it exists for audit and debugging.
package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type TurnMetadata struct {
	Model          string  `json:"model"`
	ResponseTimeMS int64   `json:"response_time_ms"`
	Error          *string `json:"error,omitempty"`
}

type TranscriptLogger struct {
	db        *sql.DB
	sessionID string
}

func NewTranscriptLogger(path string) (*TranscriptLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript database: %w", err)
	}

	logger := &TranscriptLogger{db: db, sessionID: uuid.NewString()}
	if err := logger.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (tl *TranscriptLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcript (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		input TEXT NOT NULL,
		response TEXT NOT NULL,
		metadata TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transcript_session ON transcript(session_id, turn);
	`

	_, err := tl.db.Exec(schema)
	return err
}

// SessionID identifies this process's play session in transcript rows and
// trace attributes.
func (tl *TranscriptLogger) SessionID() string {
	return tl.sessionID
}

// LogTurn appends one turn. response is the backend's raw body, recorded
// before any validation so failed turns are auditable too.
func (tl *TranscriptLogger) LogTurn(turn int, input, response string, metadata TurnMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = tl.db.Exec(`
		INSERT INTO transcript (session_id, turn, input, response, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, tl.sessionID, turn, input, response, string(metadataJSON))

	return err
}

func (tl *TranscriptLogger) Close() error {
	return tl.db.Close()
}
