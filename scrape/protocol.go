package scrape

import (
	"context"

	"github.com/fwojciec/roster"
)

// Actions understood by Session.Handle.
const (
	ActionStartMonitoring = "startMonitoring"
	ActionStopMonitoring  = "stopMonitoring"
	ActionGetData         = "getData"
	ActionStartScraping   = "startScraping"
)

// Request is a command sent to a session.
type Request struct {
	Action string `json:"action"`
}

// Response is the reply to a Request.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    []roster.Person `json:"data,omitempty"`
	Count   int             `json:"count,omitempty"`
}

// Handle executes req against the session.
func (s *Session) Handle(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionStartMonitoring:
		if err := s.Start(ctx); err != nil {
			return Response{Error: roster.ErrorMessage(err)}
		}
		return Response{Success: true, Count: s.Count()}
	case ActionStopMonitoring:
		s.Stop()
		return Response{Success: true, Count: s.Count()}
	case ActionGetData:
		return Response{Success: true, Data: s.Data(), Count: s.Count()}
	case ActionStartScraping:
		s.Scrape(ctx)
		return Response{Success: true, Data: s.Data(), Count: s.Count()}
	default:
		return Response{Error: roster.ErrorMessage(roster.Errorf(roster.EINVALID, "unknown action %q", req.Action))}
	}
}
