package order

import (
	"testing"
	"time"

	"github.com/tably-dev/tably/internal/api"
)

func TestActions(t *testing.T) {
	tests := []struct {
		status Status
		want   []Status
	}{
		{StatusNew, []Status{StatusInProgress, StatusCancelled}},
		{StatusPending, []Status{StatusInProgress, StatusCancelled}},
		{StatusInProgress, []Status{StatusCompleted, StatusCancelled}},
		{StatusCompleted, []Status{StatusArchived}},
		{StatusCancelled, []Status{StatusArchived}},
		{StatusArchived, nil},
		{Status("bogus"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			actions := Actions(tt.status)
			if len(actions) != len(tt.want) {
				t.Fatalf("Actions(%q) returned %d actions, want %d", tt.status, len(actions), len(tt.want))
			}
			for i, a := range actions {
				if a.Next != tt.want[i] {
					t.Errorf("Actions(%q)[%d].Next = %q, want %q", tt.status, i, a.Next, tt.want[i])
				}
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusArchived) {
		t.Error("IsTerminal(archived) = false, want true")
	}
	if !IsTerminal(Status("weird")) {
		t.Error("IsTerminal(unknown) = false, want true")
	}
	if IsTerminal(StatusPending) {
		t.Error("IsTerminal(pending) = true, want false")
	}
}

func TestLabelUnknownStatus(t *testing.T) {
	if got := Label(Status("weird")); got != "weird" {
		t.Errorf("Label(weird) = %q, want raw value", got)
	}
	if got := Label(StatusInProgress); got != "In Progress" {
		t.Errorf("Label(in_progress) = %q, want %q", got, "In Progress")
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	orders := []api.Order{
		{Status: "new", TotalPrice: 10, UpdatedAt: today},
		{Status: "in_progress", TotalPrice: 20, UpdatedAt: today},
		{Status: "completed", TotalPrice: 30, UpdatedAt: today},
		{Status: "completed", TotalPrice: 99, UpdatedAt: yesterday},
		{Status: "cancelled", TotalPrice: 50, UpdatedAt: today},
		{Status: "archived", TotalPrice: 5, UpdatedAt: today},
	}

	got := Stats(orders, now)

	if got.ActiveCount != 2 {
		t.Errorf("ActiveCount = %d, want 2", got.ActiveCount)
	}
	// new + in_progress + completed today; cancelled excluded, yesterday excluded.
	if got.TodayRevenue != 65 {
		t.Errorf("TodayRevenue = %v, want 65", got.TodayRevenue)
	}
}

func TestStatsFallsBackToCreatedAt(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)

	orders := []api.Order{
		{Status: "completed", TotalPrice: 12, CreatedAt: now.Add(-time.Hour)},
	}

	got := Stats(orders, now)
	if got.TodayRevenue != 12 {
		t.Errorf("TodayRevenue = %v, want 12", got.TodayRevenue)
	}
}

func TestStatsEmpty(t *testing.T) {
	got := Stats(nil, time.Now())
	if got.ActiveCount != 0 || got.TodayRevenue != 0 {
		t.Errorf("Stats(nil) = %+v, want zero summary", got)
	}
}
