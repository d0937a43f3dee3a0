package ingest

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/CodeBellator/Agent-Management-System/internal/roster"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoValidRows       = errors.New("no valid data found in file")
	ErrNoActiveAgents    = errors.New("no active agents found")
)

// MaxAgentsPerUpload caps how many active agents participate in one
// distribution.
const MaxAgentsPerUpload = 5

// AgentSource supplies the ordered active-agent roster.
type AgentSource interface {
	FindActive(ctx context.Context, limit int) ([]*roster.Agent, error)
}

// ListStore persists one upload result atomically.
type ListStore interface {
	Save(ctx context.Context, list *List) error
}

// Service orchestrates one upload end to end:
// parse → validate → fetch roster → distribute → persist.
type Service struct {
	agents AgentSource
	lists  ListStore
}

// NewService creates an ingest service
func NewService(agents AgentSource, lists ListStore) *Service {
	return &Service{agents: agents, lists: lists}
}

// Ingest runs the full pipeline for one uploaded file. The temp file at
// upload.Path is deleted on every exit path, success or failure. On any
// error nothing is persisted.
func (s *Service) Ingest(ctx context.Context, upload UploadedFile, actorID uuid.UUID) (*List, error) {
	defer func() {
		if err := os.Remove(upload.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[Ingest] Failed to remove temp file %s: %v", upload.Path, err)
		}
	}()

	records, skipped, err := ParseFile(upload.Path, upload.OriginalName)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoValidRows
	}

	agents, err := s.agents.FindActive(ctx, MaxAgentsPerUpload)
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, ErrNoActiveAgents
	}

	list := &List{
		FileName:      upload.OriginalName,
		TotalItems:    len(records),
		SkippedRows:   skipped,
		UploadedBy:    actorID,
		Distributions: Distribute(records, agents),
	}

	if err := s.lists.Save(ctx, list); err != nil {
		return nil, err
	}

	log.Printf("[Ingest] %s: %d records distributed among %d agents (%d rows skipped)",
		upload.OriginalName, list.TotalItems, len(agents), skipped)

	return list, nil
}
