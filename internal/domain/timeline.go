package domain

import "time"

// Kind of a discrete occurrence along a route.
type EventKind string

const (
	EventStart          EventKind = "start"
	EventPickup         EventKind = "pickup"
	EventRest           EventKind = "rest"
	EventBorderCrossing EventKind = "border_crossing"
	EventDelivery       EventKind = "delivery"
	EventEnd            EventKind = "end"
)

// A single timestamped occurrence along a route.
// Events are appended in chronological order and never reordered.
type TimelineEvent struct {
	Kind          EventKind
	Time          time.Time
	Location      Location
	DurationHours float64
	Note          string
}
