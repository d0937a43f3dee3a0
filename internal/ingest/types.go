package ingest

import (
	"time"

	"github.com/google/uuid"
)

// Record is one contact extracted from an uploaded file. A Record exists only
// if both Name and Phone are non-empty after trimming; rows failing that are
// dropped during parsing.
type Record struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Distribution is one agent's contiguous share of a single upload. Agent
// display fields are captured from the roster at upload time.
type Distribution struct {
	AgentID    uuid.UUID `json:"agentId"`
	AgentName  string    `json:"agentName"`
	AgentEmail string    `json:"agentEmail"`
	Items      []Record  `json:"items"`
	ItemCount  int       `json:"itemCount"`
}

// List is the persisted outcome of one ingest. Immutable after creation
// except for deletion.
type List struct {
	ID              uuid.UUID      `json:"id"`
	FileName        string         `json:"fileName"`
	TotalItems      int            `json:"totalItems"`
	SkippedRows     int            `json:"skippedRows"`
	UploadedBy      uuid.UUID      `json:"uploadedBy"`
	UploadedByEmail string         `json:"uploadedByEmail,omitempty"`
	Distributions   []Distribution `json:"distributions"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// UploadedFile describes a file the upload transport has stored on local disk.
// The ingest pipeline owns deletion of Path.
type UploadedFile struct {
	Path         string
	OriginalName string
}
