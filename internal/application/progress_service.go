package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// LogStore captures the portal persistence operations for project logs.
type LogStore interface {
	Logs(ctx context.Context, clientID string) []portal.ProjectLog
	AddLog(ctx context.Context, entry portal.ProjectLog)
}

// ProgressService records and lists per-client progress updates.
// Entries are append-only; nothing ever mutates or deletes them.
type ProgressService struct {
	store       LogStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewProgressService wires dependencies for the progress service.
func NewProgressService(store LogStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ProgressService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ProgressService{store: store, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

// Record appends a progress update for administrators.
func (s *ProgressService) Record(ctx context.Context, principal Principal, input LogEntryInput) (portal.ProjectLog, error) {
	if s == nil || s.store == nil {
		return portal.ProjectLog{}, fmt.Errorf("log store not configured")
	}
	if !principal.IsAdmin {
		return portal.ProjectLog{}, ErrUnauthorized
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(input.ClientID) == "" {
		vErr.add("client_id", "client id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if input.Progress < 0 || input.Progress > 100 {
		vErr.add("progress", "progress must be between 0 and 100")
	}
	if vErr.HasErrors() {
		return portal.ProjectLog{}, vErr
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format("Jan 2, 2006")
	}

	entry := portal.ProjectLog{
		ID:       s.idGenerator(),
		ClientID: input.ClientID,
		Date:     date,
		Title:    strings.TrimSpace(input.Title),
		Update:   input.Update,
		Progress: input.Progress,
	}
	s.store.AddLog(ctx, entry)

	serviceLogger(ctx, s.logger, "ProgressService", "Record").
		InfoContext(ctx, "progress recorded", "log_id", entry.ID, "client_id", entry.ClientID)
	return entry, nil
}

// ListFor returns the updates addressed to one client, or every update
// when clientID is empty (admin overview).
func (s *ProgressService) ListFor(ctx context.Context, clientID string) []portal.ProjectLog {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Logs(ctx, clientID)
}
