package swarmdb

import (
	"path/filepath"
	"testing"

	"github.com/banshee-data/swarm.pilot/internal/geom"
	"github.com/banshee-data/swarm.pilot/internal/swarm"
)

func setupTestDB(t *testing.T) *SwarmDB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swarm.db")

	db, err := NewSwarmDB(path)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testStepResult(step, neighbors int) swarm.StepResult {
	return swarm.StepResult{
		Step:      step,
		Neighbors: make([]swarm.Neighbor, neighbors),
		Force:     geom.Vec2{X: 0.5, Y: -1.25},
		Drive:     swarm.DriveCommand{Left: 24.5, Right: -8.0},
	}
}

func TestRecordStatus(t *testing.T) {
	db := setupTestDB(t)

	err := db.RecordStatus("bot-1", testStepResult(100, 3))
	if err != nil {
		t.Fatalf("RecordStatus failed: %v", err)
	}

	count, err := db.StatusCount("bot-1")
	if err != nil {
		t.Fatalf("StatusCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 status record, got %d", count)
	}
}

func TestRecentStatus(t *testing.T) {
	db := setupTestDB(t)

	for i := 1; i <= 5; i++ {
		if err := db.RecordStatus("bot-1", testStepResult(i*100, i)); err != nil {
			t.Fatalf("RecordStatus failed: %v", err)
		}
	}
	// A second agent's rows must not leak into the query.
	if err := db.RecordStatus("bot-2", testStepResult(100, 0)); err != nil {
		t.Fatalf("RecordStatus failed: %v", err)
	}

	records, err := db.RecentStatus("bot-1", 3)
	if err != nil {
		t.Fatalf("RecentStatus failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	for _, r := range records {
		if r.Agent != "bot-1" {
			t.Errorf("Expected agent bot-1, got %s", r.Agent)
		}
	}
	if records[0].Step != 500 {
		t.Errorf("Expected newest record first (step 500), got step %d", records[0].Step)
	}
	if records[0].NeighborCount != 5 {
		t.Errorf("Expected 5 neighbors, got %d", records[0].NeighborCount)
	}
	if records[0].ForceX != 0.5 || records[0].ForceY != -1.25 {
		t.Errorf("Force round-trip mismatch: (%f,%f)", records[0].ForceX, records[0].ForceY)
	}
	if records[0].LeftSpeed != 24.5 || records[0].RightSpeed != -8.0 {
		t.Errorf("Drive round-trip mismatch: (%f,%f)", records[0].LeftSpeed, records[0].RightSpeed)
	}
}

func TestRecordTuning(t *testing.T) {
	db := setupTestDB(t)

	w := swarm.ApplyTuning(swarm.DefaultWeights(), swarm.IncreaseSeparation)
	if err := db.RecordTuning("bot-1", swarm.IncreaseSeparation, w); err != nil {
		t.Fatalf("RecordTuning failed: %v", err)
	}
	w = swarm.ApplyTuning(w, swarm.ResetWeights)
	if err := db.RecordTuning("bot-1", swarm.ResetWeights, w); err != nil {
		t.Fatalf("RecordTuning failed: %v", err)
	}

	records, err := db.RecentTunings("bot-1", 10)
	if err != nil {
		t.Fatalf("RecentTunings failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 tuning records, got %d", len(records))
	}

	if records[0].Event != "reset_weights" {
		t.Errorf("Expected newest event reset_weights, got %s", records[0].Event)
	}
	if records[0].Separation != 2.0 {
		t.Errorf("Expected reset separation 2.0, got %f", records[0].Separation)
	}
	if records[1].Event != "increase_separation" {
		t.Errorf("Expected increase_separation, got %s", records[1].Event)
	}
	if records[1].Separation != 2.5 {
		t.Errorf("Expected boosted separation 2.5, got %f", records[1].Separation)
	}
	if records[1].Avoidance != 3.0 {
		t.Errorf("Expected default avoidance 3.0, got %f", records[1].Avoidance)
	}
}

func TestRecentStatusEmpty(t *testing.T) {
	db := setupTestDB(t)

	records, err := db.RecentStatus("missing", 10)
	if err != nil {
		t.Fatalf("RecentStatus failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
