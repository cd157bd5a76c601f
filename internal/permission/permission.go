package permission

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Response represents the user's permission decision.
type Response int

const (
	Allow Response = iota
	Deny
	AllowForSession
)

func (r Response) String() string {
	switch r {
	case Allow:
		return "allow"
	case AllowForSession:
		return "allow for session"
	default:
		return "deny"
	}
}

// Request represents a tool asking for user permission.
type Request struct {
	ToolName   string
	Summary    string
	Input      string
	ResponseCh chan Response
}

// Service manages tool execution permissions.
type Service struct {
	mu             sync.RWMutex
	sessionAllowed map[string]bool // tools allowed for the entire session
	requestCh      chan Request    // channel to send permission requests to the TUI
}

// NewService creates a new permission service.
func NewService() *Service {
	return &Service{
		sessionAllowed: make(map[string]bool),
		requestCh:      make(chan Request, 1),
	}
}

// RequestCh returns the channel that receives permission requests (for the TUI to listen on).
func (s *Service) RequestCh() <-chan Request {
	return s.requestCh
}

// Check checks if a tool is allowed to execute. If the tool has been allowed
// for the session, returns Allow immediately. Otherwise, sends a request to
// the TUI and blocks until the user responds or the context is cancelled.
func (s *Service) Check(ctx context.Context, toolName string, input json.RawMessage) Response {
	if s.IsAllowed(toolName) {
		return Allow
	}

	respCh := make(chan Response, 1)
	req := Request{
		ToolName:   toolName,
		Summary:    Summarize(toolName, input),
		Input:      string(input),
		ResponseCh: respCh,
	}

	select {
	case s.requestCh <- req:
	case <-ctx.Done():
		return Deny
	}

	select {
	case resp := <-respCh:
		if resp == AllowForSession {
			s.mu.Lock()
			s.sessionAllowed[toolName] = true
			s.mu.Unlock()
			return Allow
		}
		return resp
	case <-ctx.Done():
		return Deny
	}
}

// Reset clears all session-level permissions.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionAllowed = make(map[string]bool)
}

// IsAllowed checks if a tool is already allowed without prompting.
func (s *Service) IsAllowed(toolName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionAllowed[toolName]
}

// Summarize renders a call as "tool key=value ..." for the approval prompt.
// Input that is not a JSON object is shown as is.
func Summarize(toolName string, input json.RawMessage) string {
	var args map[string]any
	if len(input) == 0 || json.Unmarshal(input, &args) != nil {
		if s := strings.TrimSpace(string(input)); s != "" {
			return toolName + " " + s
		}
		return toolName
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{toolName}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, " ")
}
