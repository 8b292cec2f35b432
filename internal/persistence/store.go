// Package persistence provides SQLite-based storage of completed mission
// results. Trained policies are never persisted: every run retrains from
// scratch, and the store only holds what a run produced.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/mission"
)

// ErrNotFound is returned when a mission id has no stored result.
var ErrNotFound = errors.New("persistence: mission not found")

// Store wraps a SQLite connection for mission result storage.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS missions (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		galaxy TEXT NOT NULL,
		planet TEXT NOT NULL,
		terrain TEXT NOT NULL,
		weather TEXT NOT NULL,
		narrative TEXT NOT NULL,
		num_timesteps INTEGER NOT NULL,
		ethics_enabled INTEGER NOT NULL,
		total_reward REAL NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS agent_results (
		mission_id TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		final_reward REAL NOT NULL,
		stats_json TEXT NOT NULL,
		PRIMARY KEY (mission_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_agent_results_mission ON agent_results(mission_id);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// MissionMeta is the list-view row for stored missions.
type MissionMeta struct {
	ID          string  `db:"id" json:"id"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	Galaxy      string  `db:"galaxy" json:"galaxy"`
	Planet      string  `db:"planet" json:"planet"`
	Terrain     string  `db:"terrain" json:"terrain"`
	Weather     string  `db:"weather" json:"weather"`
	TotalReward float64 `db:"total_reward" json:"total_reward"`
}

// SaveResult writes a completed mission result under the given id.
func (st *Store) SaveResult(id string, res *mission.Result) error {
	blob, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO missions
		(id, created_at, galaxy, planet, terrain, weather, narrative,
		 num_timesteps, ethics_enabled, total_reward, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		time.Now().UTC().Format(time.RFC3339),
		res.Scenario.Galaxy,
		res.Scenario.Planet,
		res.Scenario.Terrain,
		res.Scenario.Weather,
		res.Scenario.Narrative,
		res.Config.NumTimesteps,
		boolToInt(res.Config.EthicsEnabled),
		res.TotalReward,
		string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert mission: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM agent_results WHERE mission_id = ?", id); err != nil {
		return err
	}
	for name, final := range res.FinalRewards {
		stats, err := json.Marshal(res.AgentStats[name])
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		role := name
		for _, e := range res.Log {
			if e.Name == name {
				role = e.Role
				break
			}
		}
		if _, err := tx.Exec(`
			INSERT INTO agent_results (mission_id, name, role, final_reward, stats_json)
			VALUES (?, ?, ?, ?, ?)`,
			id, name, role, final, string(stats),
		); err != nil {
			return fmt.Errorf("insert agent result: %w", err)
		}
	}

	return tx.Commit()
}

// GetResult loads a stored mission result by id.
func (st *Store) GetResult(id string) (*mission.Result, error) {
	var blob string
	err := st.conn.Get(&blob, "SELECT result_json FROM missions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query mission: %w", err)
	}

	var res mission.Result
	if err := json.Unmarshal([]byte(blob), &res); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &res, nil
}

// ListMissions returns stored mission metadata, newest first.
func (st *Store) ListMissions() ([]MissionMeta, error) {
	var out []MissionMeta
	err := st.conn.Select(&out, `
		SELECT id, created_at, galaxy, planet, terrain, weather, total_reward
		FROM missions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return out, nil
}

// DeleteMission removes a stored mission and its agent rows.
func (st *Store) DeleteMission(id string) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM missions WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM agent_results WHERE mission_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
