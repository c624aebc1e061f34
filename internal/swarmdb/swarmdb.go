// Package swarmdb persists agent telemetry and tuning history to sqlite.
package swarmdb

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/swarm.pilot/internal/monitoring"
	"github.com/banshee-data/swarm.pilot/internal/swarm"
)

type SwarmDB struct {
	*sql.DB
}

// schema.sql defines tables for periodic status reports and tuning events.
//
//go:embed schema.sql
var schemaSQL string

func NewSwarmDB(path string) (*SwarmDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(schemaSQL)
	if err != nil {
		db.Close()
		return nil, err
	}

	monitoring.Debugf("initialized swarm database schema at %s", path)

	return &SwarmDB{db}, nil
}

// RecordStatus stores one periodic status report for an agent.
func (sdb *SwarmDB) RecordStatus(agent string, res swarm.StepResult) error {
	query := `
		INSERT INTO agent_status (agent, step, neighbor_count, force_x, force_y, left_speed, right_speed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sdb.Exec(query, agent, res.Step, len(res.Neighbors),
		res.Force.X, res.Force.Y, res.Drive.Left, res.Drive.Right)
	if err != nil {
		return fmt.Errorf("failed to insert agent status: %v", err)
	}

	return nil
}

// RecordTuning stores a tuning event and the weights in effect after it.
func (sdb *SwarmDB) RecordTuning(agent string, ev swarm.TuningEvent, w swarm.BehaviorWeights) error {
	query := `
		INSERT INTO tuning_events (agent, event, separation, alignment, cohesion, avoidance, wander)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sdb.Exec(query, agent, ev.String(),
		w.Separation, w.Alignment, w.Cohesion, w.ObstacleAvoidance, w.Wander)
	if err != nil {
		return fmt.Errorf("failed to insert tuning event: %v", err)
	}

	return nil
}

// StatusRecord is a stored periodic status report.
type StatusRecord struct {
	ID             int64   `json:"id"`
	Agent          string  `json:"agent"`
	Step           int64   `json:"step"`
	NeighborCount  int     `json:"neighbor_count"`
	ForceX         float64 `json:"force_x"`
	ForceY         float64 `json:"force_y"`
	LeftSpeed      float64 `json:"left_speed"`
	RightSpeed     float64 `json:"right_speed"`
	WriteTimestamp float64 `json:"write_timestamp"`
}

// TuningRecord is a stored tuning event.
type TuningRecord struct {
	ID             int64   `json:"id"`
	Agent          string  `json:"agent"`
	Event          string  `json:"event"`
	Separation     float64 `json:"separation"`
	Alignment      float64 `json:"alignment"`
	Cohesion       float64 `json:"cohesion"`
	Avoidance      float64 `json:"avoidance"`
	Wander         float64 `json:"wander"`
	WriteTimestamp float64 `json:"write_timestamp"`
}

// RecentStatus retrieves the most recent status reports for an agent,
// newest first.
func (sdb *SwarmDB) RecentStatus(agent string, limit int) ([]StatusRecord, error) {
	query := `
		SELECT id, agent, step, neighbor_count, force_x, force_y, left_speed, right_speed, write_timestamp
		FROM agent_status
		WHERE agent = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := sdb.Query(query, agent, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent status: %v", err)
	}
	defer rows.Close()

	var records []StatusRecord
	for rows.Next() {
		var r StatusRecord
		err := rows.Scan(&r.ID, &r.Agent, &r.Step, &r.NeighborCount,
			&r.ForceX, &r.ForceY, &r.LeftSpeed, &r.RightSpeed, &r.WriteTimestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status row: %v", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// RecentTunings retrieves the most recent tuning events for an agent,
// newest first.
func (sdb *SwarmDB) RecentTunings(agent string, limit int) ([]TuningRecord, error) {
	query := `
		SELECT id, agent, event, separation, alignment, cohesion, avoidance, wander, write_timestamp
		FROM tuning_events
		WHERE agent = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := sdb.Query(query, agent, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tuning events: %v", err)
	}
	defer rows.Close()

	var records []TuningRecord
	for rows.Next() {
		var r TuningRecord
		err := rows.Scan(&r.ID, &r.Agent, &r.Event,
			&r.Separation, &r.Alignment, &r.Cohesion, &r.Avoidance, &r.Wander,
			&r.WriteTimestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tuning row: %v", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// StatusCount returns the number of stored status reports for an agent.
func (sdb *SwarmDB) StatusCount(agent string) (int, error) {
	var count int
	err := sdb.QueryRow(`SELECT COUNT(*) FROM agent_status WHERE agent = ?`, agent).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count status reports: %v", err)
	}
	return count, nil
}
