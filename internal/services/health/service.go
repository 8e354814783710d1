// Package health reports whether the API's backing services are reachable.
package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB and adapters over other backends.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Service encapsulates health-related checks.
type Service struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{checks: map[string]Pinger{}, timeout: 2 * time.Second}
}

// Register adds a named dependency. Nil pingers are ignored.
func (s *Service) Register(name string, p Pinger) {
	if p == nil {
		return
	}
	s.checks[name] = p
}

// Report is the health payload.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Status pings every registered dependency.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true}
	if len(s.checks) == 0 {
		return report
	}
	report.Checks = make(map[string]string, len(s.checks))
	for name, p := range s.checks {
		pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := p.PingContext(pingCtx)
		cancel()
		if err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}
