// Package trace persists step-context events to SQLite so nested step runs
// can be inspected after the suite finishes.
package trace

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
)

// ScenarioTrace is one recorded scenario with its events in order.
type ScenarioTrace struct {
	ID     int64
	Title  string
	Source string
	Tags   []string
	Events []EventRecord
}

// EventRecord is the stored form of a scope.Event.
type EventRecord struct {
	Seq      int
	Kind     scope.EventKind
	StepType string
	StepText string
	Depth    int
	TopLevel string
	Error    string
}

// Store is a SQLite-backed trace database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the trace database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, domain.NewError("trace", "", "failed to create trace directory "+dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, domain.NewError("trace", "", "failed to open trace database "+path, err)
	}
	// SQLite allows a single writer; serialise through one connection.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginScenario inserts a scenario row and returns its id.
func (s *Store) BeginScenario(info domain.ScenarioInfo) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO scenarios (title, source, tags) VALUES (?, ?, ?)`,
		info.Title, info.Source, strings.Join(info.Tags, " "))
	if err != nil {
		return 0, domain.NewError("trace", info.Title, "failed to insert scenario", err)
	}
	return res.LastInsertId()
}

// Append stores e under the given scenario.
func (s *Store) Append(scenarioID int64, e scope.Event) error {
	rec := recordOf(e)
	_, err := s.db.Exec(`INSERT INTO step_events
		(scenario_id, seq, kind, step_type, step_text, depth, top_level, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scenarioID, rec.Seq, string(rec.Kind), rec.StepType, rec.StepText, rec.Depth, rec.TopLevel, rec.Error)
	if err != nil {
		return domain.NewError("trace", e.Scenario.Title, fmt.Sprintf("failed to append %s event", e.Kind), err)
	}
	return nil
}

// Scenarios returns every recorded scenario, oldest first, with its events.
func (s *Store) Scenarios() ([]ScenarioTrace, error) {
	rows, err := s.db.Query(`SELECT id, title, source, tags FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, domain.NewError("trace", "", "failed to list scenarios", err)
	}
	defer rows.Close()

	var traces []ScenarioTrace
	for rows.Next() {
		var (
			t    ScenarioTrace
			tags string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Source, &tags); err != nil {
			return nil, domain.NewError("trace", "", "failed to read scenario", err)
		}
		t.Tags = strings.Fields(tags)
		traces = append(traces, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError("trace", "", "failed to list scenarios", err)
	}
	rows.Close()

	for i := range traces {
		events, err := s.Events(traces[i].ID)
		if err != nil {
			return nil, err
		}
		traces[i].Events = events
	}
	return traces, nil
}

// Events returns the events of one scenario in emission order.
func (s *Store) Events(scenarioID int64) ([]EventRecord, error) {
	rows, err := s.db.Query(`SELECT seq, kind, step_type, step_text, depth, top_level, error
		FROM step_events WHERE scenario_id = ? ORDER BY seq`, scenarioID)
	if err != nil {
		return nil, domain.NewError("trace", "", fmt.Sprintf("failed to list events of scenario %d", scenarioID), err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var (
			rec  EventRecord
			kind string
		)
		if err := rows.Scan(&rec.Seq, &kind, &rec.StepType, &rec.StepText, &rec.Depth, &rec.TopLevel, &rec.Error); err != nil {
			return nil, domain.NewError("trace", "", "failed to read event", err)
		}
		rec.Kind = scope.EventKind(kind)
		events = append(events, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError("trace", "", "failed to list events", err)
	}
	return events, nil
}

func recordOf(e scope.Event) EventRecord {
	rec := EventRecord{Seq: e.Seq, Kind: e.Kind, Depth: e.Depth}
	if e.Kind == scope.StepEntered || e.Kind == scope.StepExited {
		rec.StepType = e.Step.Type.String()
		rec.StepText = e.Step.Text
	}
	if e.HasTopLevel {
		rec.TopLevel = e.TopLevel.String()
	}
	if e.Err != nil {
		rec.Error = e.Err.Error()
	}
	return rec
}
