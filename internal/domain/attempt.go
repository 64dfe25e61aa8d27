package domain

import (
	"net/netip"
	"time"

	"github.com/google/uuid"
)

// LoginAttempt lives for one scheduler-triggered login and is never persisted.
type LoginAttempt struct {
	ID        string
	StartedAt time.Time
	Account   string
	Address   netip.Addr
	Before    SessionState
	After     SessionState
	Submitted bool
}

func NewLoginAttempt(account string, now time.Time) *LoginAttempt {
	return &LoginAttempt{
		ID:        uuid.New().String(),
		StartedAt: now,
		Account:   account,
	}
}
