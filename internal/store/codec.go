package store

import (
	"encoding/json"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

// EncodeEvents serializes the event set for the blob store. Dates travel
// as YYYY-MM-DD strings, everything else as plain JSON values, matching
// what the browser client wrote to local storage.
func EncodeEvents(events []models.Event) ([]byte, error) {
	if events == nil {
		events = []models.Event{}
	}
	return json.Marshal(events)
}

// DecodeEvents reconstructs events from a snapshot. A snapshot that is not
// a JSON array fails with ErrSnapshotCorrupt; individual records that fail
// to decode are dropped and counted, keeping the rest. Loading is
// recoverable by contract: the caller degrades to whatever survived.
func DecodeEvents(raw []byte) (events []models.Event, dropped int, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrSnapshotCorrupt.Code, appErrors.ErrSnapshotCorrupt.Status, appErrors.ErrSnapshotCorrupt.Message)
	}

	events = make([]models.Event, 0, len(items))
	for _, item := range items {
		var ev models.Event
		if uerr := json.Unmarshal(item, &ev); uerr != nil {
			dropped++
			continue
		}
		if ev.ID == "" || ev.Date.IsZero() {
			dropped++
			continue
		}
		events = append(events, ev)
	}
	return events, dropped, nil
}
