package client

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/njupt-wifi/autologin/internal/domain"
	"github.com/njupt-wifi/autologin/internal/port"
)

// DefaultDebounce is the settle window after a connectivity change.
const DefaultDebounce = 3 * time.Second

// Scheduler turns connectivity-change signals into login attempts, one at a
// time. A signal arriving less than one debounce window after the previous
// attempt finished is dropped.
type Scheduler struct {
	auth     port.Authenticator
	cred     domain.Credential
	debounce time.Duration
	logger   *log.Logger

	now           func() time.Time
	sleep         func(ctx context.Context, d time.Duration) error
	lastAttemptAt time.Time
}

func NewScheduler(auth port.Authenticator, cred domain.Credential, debounce time.Duration, logger *log.Logger) *Scheduler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Scheduler{
		auth:     auth,
		cred:     cred,
		debounce: debounce,
		logger:   logger,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Run consumes signals until the channel is closed or ctx is done.
// Login failures are logged and never end the loop.
func (s *Scheduler) Run(ctx context.Context, signals <-chan struct{}) error {
	s.lastAttemptAt = s.now().Add(-s.debounce)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped", "reason", ctx.Err())
			return nil
		case _, ok := <-signals:
			if !ok {
				s.logger.Info("Signal source closed, scheduler stopped")
				return nil
			}
			if err := s.handle(ctx); err != nil {
				s.logger.Info("Scheduler stopped during debounce", "reason", err)
				return nil
			}
		}
	}
}

// handle processes one signal. It returns an error only when ctx ends while
// waiting out the debounce window.
func (s *Scheduler) handle(ctx context.Context) error {
	if since := s.now().Sub(s.lastAttemptAt); since < s.debounce {
		s.logger.Debug("Connectivity change ignored", "since_last_attempt", since)
		return nil
	}
	if err := s.sleep(ctx, s.debounce); err != nil {
		return err
	}
	if err := s.auth.Login(ctx, s.cred); err != nil {
		s.logger.Error("Failed to connect", "kind", errorKind(err), "err", err)
	} else {
		s.logger.Info("Connected")
	}
	s.lastAttemptAt = s.now()
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrAddressUnavailable):
		return "address-unavailable"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed-response"
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return "authentication-failed"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
