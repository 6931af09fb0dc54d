package progress

import (
	"errors"
	"time"
)

// DisplayDateLayout renders the creation instant the way the client
// shows it in the weight history list.
const DisplayDateLayout = "Monday, 2 January 2006"

// ErrNoEntries is returned when the user has no progress entries yet.
var ErrNoEntries = errors.New("no progress entries")

// Entry is a single body weight measurement.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
}

func (e Entry) DisplayDate() string {
	return e.CreatedAt.Format(DisplayDateLayout)
}
