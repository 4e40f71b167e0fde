package activity

import "time"

// TimestampLayout is the layout used when writing new timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is an ISO-8601 instant kept in its stored string form.
type Timestamp string

// NewTimestamp formats t in UTC with millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(TimestampLayout))
}

// Local date-times without an offset, then a bare date read as UTC midnight.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

const dateLayout = "2006-01-02"

// Time parses the timestamp as RFC 3339, falling back to ISO-8601 date-times
// without an offset (local time) and bare dates (UTC).
func (ts Timestamp) Time() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, string(ts))
	if err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if lt, lerr := time.ParseInLocation(layout, string(ts), time.Local); lerr == nil {
			return lt, nil
		}
	}
	if dt, derr := time.Parse(dateLayout, string(ts)); derr == nil {
		return dt, nil
	}
	return time.Time{}, err
}

// ActivityLog maps an identity to its timestamps in the order they were recorded.
type ActivityLog map[string][]Timestamp

// Outcome describes what happened to a recording attempt.
type Outcome string

const (
	OutcomeRecorded      Outcome = "recorded"
	OutcomeRejected      Outcome = "rejected"
	OutcomeStorageFailed Outcome = "storage_failed"
)

// Result is returned by Service.Record for every attempt.
type Result struct {
	Outcome   Outcome   `json:"outcome"`
	Identity  string    `json:"identity"`
	Timestamp Timestamp `json:"timestamp,omitempty"`
	Err       error     `json:"-"`
}
