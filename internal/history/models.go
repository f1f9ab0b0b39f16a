package history

import (
	"time"

	"github.com/google/uuid"
)

// Collection names recognized by the store. Arbitrary names are accepted;
// these are the two the CLI and API expose.
const (
	CollectionHistory = "history"
	CollectionSaved   = "saved"
)

// Entry is one remembered identification outcome.
type Entry struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"video_id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Year       string    `json:"year"`
	Poster     string    `json:"poster,omitempty"`
	Confidence int       `json:"confidence"`
	MatchedAt  time.Time `json:"matched_at"`
}

// NewEntry builds an entry with a fresh id and the current timestamp.
func NewEntry(videoID, url, title, year, poster string, confidence int) Entry {
	return Entry{
		ID:         uuid.NewString(),
		VideoID:    videoID,
		URL:        url,
		Title:      title,
		Year:       year,
		Poster:     poster,
		Confidence: confidence,
		MatchedAt:  time.Now().UTC(),
	}
}

// Snapshot is an ordered collection state, newest first. Reducers never
// mutate their input; they return a fresh snapshot.
type Snapshot []Entry

// Add prepends the entry, removing any existing entry with the same id so a
// re-added item moves to the front instead of duplicating.
func Add(s Snapshot, entry Entry) Snapshot {
	next := make(Snapshot, 0, len(s)+1)
	next = append(next, entry)
	for _, existing := range s {
		if existing.ID == entry.ID {
			continue
		}
		next = append(next, existing)
	}
	return next
}

// Remove drops the entry with the given id, if present.
func Remove(s Snapshot, id string) Snapshot {
	next := make(Snapshot, 0, len(s))
	for _, existing := range s {
		if existing.ID == id {
			continue
		}
		next = append(next, existing)
	}
	return next
}

// Trim caps the snapshot at max entries, keeping the newest. A non-positive
// max means unlimited.
func Trim(s Snapshot, max int) Snapshot {
	if max <= 0 || len(s) <= max {
		return s
	}
	next := make(Snapshot, max)
	copy(next, s[:max])
	return next
}
