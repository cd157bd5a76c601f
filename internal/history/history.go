// Package history journals tool calls made through a registry.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/db"
	"github.com/webgovernor/dirtools/internal/tools"
)

// Service records the calls of one session.
type Service struct {
	db      *db.DB
	session *db.Session
}

// NewService starts a session for workDir. Mode names how the program was
// run ("console", "serve" or "call").
func NewService(database *db.DB, workDir, mode string) (*Service, error) {
	id := fmt.Sprintf("ses_%s_%s",
		time.Now().Format("20060102150405"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
	)
	session, err := database.CreateSession(id, workDir, mode)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &Service{db: database, session: session}, nil
}

// SessionID returns the current session ID.
func (s *Service) SessionID() string {
	return s.session.ID
}

// Attach journals every call executed through r.
func (s *Service) Attach(r *tools.Registry) {
	r.Observe(s.Record)
}

// Record persists one call. Journal failures are logged and never reach the
// caller of the tool.
func (s *Service) Record(ctx context.Context, call tools.Call) {
	input := strings.TrimSpace(string(call.Input))
	if input == "" {
		input = "{}"
	}
	err := s.db.AddInvocation(db.Invocation{
		ID:        uuid.NewString(),
		SessionID: s.session.ID,
		Tool:      call.Tool,
		Input:     input,
		Output:    call.Output,
		IsError:   call.IsError,
		Duration:  call.Duration,
		CreatedAt: call.Started,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("tool", call.Tool).Msg("Failed to journal tool call")
	}
}

// Recent returns up to n calls of this session, newest first.
func (s *Service) Recent(n int) ([]db.Invocation, error) {
	return s.db.ListInvocations(s.session.ID, n)
}

// Count returns the number of calls journaled in this session.
func (s *Service) Count() (int, error) {
	return s.db.CountInvocations(s.session.ID)
}

// Clear removes this session's calls.
func (s *Service) Clear() error {
	if err := s.db.DeleteInvocations(s.session.ID); err != nil {
		return fmt.Errorf("clearing session %s: %w", s.session.ID, err)
	}
	return nil
}
