// Package persistence provides SQLite-based save slot storage.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/turbodog111/parliament/internal/state"
)

// MaxSlots is the number of save slots exposed to the player.
const MaxSlots = 3

// ErrSlotEmpty is returned when loading a slot with no save in it.
var ErrSlotEmpty = errors.New("save slot is empty")

// ErrBadSlot is returned for slot numbers outside [1, MaxSlots].
var ErrBadSlot = errors.New("invalid save slot")

// DB wraps a SQLite connection holding the save slots.
type DB struct {
	conn *sqlx.DB
}

// SlotInfo summarizes one save slot for menus.
type SlotInfo struct {
	Slot        int    `db:"slot" json:"slot"`
	PlayerName  string `db:"player_name" json:"playerName"`
	PlayerParty string `db:"player_party" json:"playerParty"`
	Turn        int    `db:"turn" json:"turn"`
	GameDate    string `db:"game_date" json:"gameDate"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot INTEGER PRIMARY KEY,
		version TEXT NOT NULL,
		player_name TEXT NOT NULL,
		player_party TEXT NOT NULL,
		turn INTEGER NOT NULL,
		game_date TEXT NOT NULL,
		snapshot TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Save writes a world snapshot into the given slot, replacing any
// previous save there.
func (db *DB) Save(slot int, w *state.World) error {
	if slot < 1 || slot > MaxSlots {
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}

	snapshot, err := state.MarshalSnapshot(w)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = db.conn.Exec(`INSERT OR REPLACE INTO saves
		(slot, version, player_name, player_party, turn, game_date, snapshot, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slot, w.Version, w.PlayerName, string(w.PlayerParty),
		w.Turn, state.Date(w.Turn), string(snapshot),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}

	slog.Info("game saved", "slot", slot, "turn", w.Turn)
	return nil
}

// Load reads the world snapshot from the given slot.
func (db *DB) Load(slot int) (*state.World, error) {
	if slot < 1 || slot > MaxSlots {
		return nil, fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}

	var snapshot string
	err := db.conn.Get(&snapshot, "SELECT snapshot FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSlotEmpty, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %d: %w", slot, err)
	}

	w, err := state.UnmarshalSnapshot([]byte(snapshot))
	if err != nil {
		return nil, fmt.Errorf("decode slot %d: %w", slot, err)
	}
	return w, nil
}

// Delete clears a save slot. Deleting an empty slot is not an error.
func (db *DB) Delete(slot int) error {
	if slot < 1 || slot > MaxSlots {
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}
	_, err := db.conn.Exec("DELETE FROM saves WHERE slot = ?", slot)
	return err
}

// List returns info for every occupied slot, ordered by slot number.
func (db *DB) List() ([]SlotInfo, error) {
	var slots []SlotInfo
	err := db.conn.Select(&slots,
		"SELECT slot, player_name, player_party, turn, game_date, updated_at FROM saves ORDER BY slot")
	return slots, err
}

// HasAny reports whether any slot holds a save.
func (db *DB) HasAny() (bool, error) {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM saves"); err != nil {
		return false, err
	}
	return n > 0, nil
}
