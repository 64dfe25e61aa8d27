package port

import (
	"context"

	"github.com/njupt-wifi/autologin/internal/domain"
)

// Authenticator runs one complete login attempt
type Authenticator interface {
	Login(ctx context.Context, cred domain.Credential) error
}
