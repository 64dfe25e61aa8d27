package port

import (
	"context"
	"net/netip"

	"github.com/njupt-wifi/autologin/internal/domain"
)

// Portal is the controller's HTTP surface
type Portal interface {
	// FetchAddress scrapes the client's IPv4 address from the landing page
	FetchAddress(ctx context.Context) (netip.Addr, error)

	// CheckStatus queries the session bound to addr and classifies it against account
	CheckStatus(ctx context.Context, addr netip.Addr, account string) (domain.Session, error)

	// SubmitCredentials posts the login form; the response body is ignored
	SubmitCredentials(ctx context.Context, addr netip.Addr, account, password string) error
}
