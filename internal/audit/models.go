package audit

import (
	"time"

	id "stargate/pkg/domain"
)

// Action names a recorded change.
type Action string

const (
	ActionPersonCreated Action = "person_created"
	ActionPersonRenamed Action = "person_renamed"
	ActionDutyRecorded  Action = "duty_recorded"
	ActionCareerEnded   Action = "career_ended"
)

// Event is emitted from domain logic after a change commits. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID         string            `json:"id"`
	Action     Action            `json:"action"`
	PersonID   id.PersonID       `json:"person_id"`
	PersonName string            `json:"person_name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}
