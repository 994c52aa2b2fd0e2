// Package order models the lifecycle of restaurant orders and the
// statistics derived from them.
package order

import (
	"time"

	"github.com/tably-dev/tably/internal/api"
)

// Status is an order's lifecycle state as reported by the server. Unknown
// values are kept displayable rather than rejected.
type Status string

const (
	StatusNew        Status = "new"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusArchived   Status = "archived"
)

// Action is a status change the dashboard may request for an order. The
// server remains the authority on legality; the client only offers actions
// consistent with the current status.
type Action struct {
	Label string
	Next  Status
}

// Actions returns the status changes offered for an order in the given
// state. Archived orders and unknown statuses get none.
func Actions(status Status) []Action {
	switch status {
	case StatusNew, StatusPending:
		return []Action{
			{Label: "Start Preparing", Next: StatusInProgress},
			{Label: "Cancel", Next: StatusCancelled},
		}
	case StatusInProgress:
		return []Action{
			{Label: "Mark Complete", Next: StatusCompleted},
			{Label: "Cancel", Next: StatusCancelled},
		}
	case StatusCompleted, StatusCancelled:
		return []Action{
			{Label: "Archive", Next: StatusArchived},
		}
	default:
		return nil
	}
}

// IsTerminal reports whether no further status changes are offered.
func IsTerminal(status Status) bool {
	return len(Actions(status)) == 0
}

// IsActive reports whether an order still needs kitchen attention.
func IsActive(status Status) bool {
	switch status {
	case StatusNew, StatusPending, StatusInProgress:
		return true
	}
	return false
}

// Label returns a human-readable form of a status for display.
func Label(status Status) string {
	switch status {
	case StatusNew:
		return "New"
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusArchived:
		return "Archived"
	default:
		return string(status)
	}
}

// Summary holds the aggregate figures shown in the dashboard header. They
// are recomputed from the full collection after every fetch, never
// incrementally maintained.
type Summary struct {
	ActiveCount  int
	TodayRevenue float64
}

// Stats derives the dashboard summary from an order collection. An order
// counts toward today's revenue when it last changed on now's calendar day
// and is not cancelled. Orders that never report an update time fall back
// to their creation time.
func Stats(orders []api.Order, now time.Time) Summary {
	var s Summary
	y, m, d := now.Date()

	for _, o := range orders {
		status := Status(o.Status)
		if IsActive(status) {
			s.ActiveCount++
		}

		if status == StatusCancelled {
			continue
		}
		stamp := o.UpdatedAt
		if stamp.IsZero() {
			stamp = o.CreatedAt
		}
		oy, om, od := stamp.In(now.Location()).Date()
		if oy == y && om == m && od == d {
			s.TodayRevenue += float64(o.TotalPrice)
		}
	}

	return s
}
