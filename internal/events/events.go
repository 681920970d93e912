package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	TypePing                = "ping"
	TypeStatus              = "status"
	TypeApplicationRecorded = "application_recorded"
	TypeJobDeleted          = "job_deleted"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	return makeEventAt(time.Now().UTC(), reqID, typ, v, data)
}

func makeEventAt(at time.Time, reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err == nil {
			raw = b
		}
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        at,
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
