package client

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/njupt-wifi/autologin/internal/domain"
	"github.com/njupt-wifi/autologin/internal/port"
)

var _ port.Authenticator = (*Loginer)(nil)

// Loginer drives one login attempt against the portal. It never retries:
// the next connectivity change is the retry.
type Loginer struct {
	portal port.Portal
	logger *log.Logger
	now    func() time.Time
}

func NewLoginer(portal port.Portal, logger *log.Logger) *Loginer {
	return &Loginer{portal: portal, logger: logger, now: time.Now}
}

// Login submits credentials only when no session at all is bound to the
// client address, then confirms with a second status probe. The attempt
// record is logged when Login returns, on every path.
func (l *Loginer) Login(ctx context.Context, cred domain.Credential) (err error) {
	attempt := domain.NewLoginAttempt(cred.Account(), l.now())
	lg := l.logger.With("attempt", attempt.ID)
	lg.Info("Start to login", "account", attempt.Account)
	defer func() {
		kv := []any{
			"account", attempt.Account,
			"address", attempt.Address,
			"before", attempt.Before,
			"after", attempt.After,
			"submitted", attempt.Submitted,
			"elapsed", l.now().Sub(attempt.StartedAt),
		}
		if err != nil {
			lg.Error("Attempt finished", append(kv, "err", err)...)
			return
		}
		lg.Info("Attempt finished", kv...)
	}()

	addr, err := l.portal.FetchAddress(ctx)
	if err != nil {
		return fmt.Errorf("fetch address: %w", err)
	}
	attempt.Address = addr
	lg.Debug("Client address discovered", "address", addr)

	before, err := l.portal.CheckStatus(ctx, addr, attempt.Account)
	if err != nil {
		return fmt.Errorf("check status: %w", err)
	}
	attempt.Before = before.State
	attempt.After = before.State
	if before.State.Active() {
		// A session bound to the address, even someone else's, is left alone.
		lg.Info("Already online", "state", before.State, "account", before.Record.Account, "address", addr)
		return nil
	}

	lg.Info("Submitting credentials", "address", addr)
	attempt.Submitted = true
	if err := l.portal.SubmitCredentials(ctx, addr, attempt.Account, cred.Password); err != nil {
		return fmt.Errorf("submit credentials: %w", err)
	}

	after, err := l.portal.CheckStatus(ctx, addr, attempt.Account)
	if err != nil {
		return fmt.Errorf("confirm status: %w", err)
	}
	attempt.After = after.State
	if !after.State.Active() {
		return fmt.Errorf("%w: still offline at %s (result=%q msg=%q)",
			domain.ErrAuthenticationFailed, addr, after.Record.Result, after.Record.Message)
	}
	lg.Info("Logged in", "state", after.State, "address", addr)
	return nil
}
