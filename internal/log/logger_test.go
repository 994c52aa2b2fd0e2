package log

import (
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventLogin},
		{Event: EventOrderStatusChanged, OrderID: 42, OrderStatus: "in_progress"},
		{Event: EventRequestFailed, Endpoint: "/orders/", Method: "GET", Status: 500, Error: "boom"},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ReadAll: got %d events, want 3", len(got))
	}
	if got[1].OrderID != 42 || got[1].OrderStatus != "in_progress" {
		t.Errorf("event 1: got order=%d status=%q, want order=42 status=%q", got[1].OrderID, got[1].OrderStatus, "in_progress")
	}
	if got[2].Status != 500 {
		t.Errorf("event 2 status: got %d, want 500", got[2].Status)
	}
}

func TestAppendSetsTime(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	if err := logger.Append(LogEvent{Event: EventLogout}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadAll: got %d events, want 1", len(got))
	}
	if got[0].Time.IsZero() {
		t.Error("expected Append to set event time")
	}
	if time.Since(got[0].Time) > time.Minute {
		t.Errorf("event time too old: %v", got[0].Time)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLogger(tmpDir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing file: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadAll on missing file: got %d events, want 0", len(got))
	}
}
