package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"

	"github.com/njupt-wifi/autologin/internal/domain"
	"github.com/njupt-wifi/autologin/internal/port"
)

const maxBodyBytes = 1 << 20

var _ port.Portal = (*PortalClient)(nil)

// PortalClient speaks the controller's ePortal protocol.
type PortalClient struct {
	client Doer
	portal *Portal
}

func NewPortalClient(client Doer, portal *Portal) *PortalClient {
	return &PortalClient{client: client, portal: portal}
}

// FetchAddress loads the landing page, decodes it from the portal charset and
// extracts the client's IPv4 address.
func (c *PortalClient) FetchAddress(ctx context.Context) (netip.Addr, error) {
	body, err := c.get(ctx, c.portal.LandingURL)
	if err != nil {
		return netip.Addr{}, err
	}
	defer body.Close()
	page, err := io.ReadAll(c.portal.encoding.NewDecoder().Reader(io.LimitReader(body, maxBodyBytes)))
	if err != nil {
		return netip.Addr{}, transportError(http.MethodGet, c.portal.LandingURL, err)
	}
	addr, err := c.portal.ExtractAddress(string(page))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: no marker in landing page", err)
	}
	return addr, nil
}

// CheckStatus asks the controller which account, if any, holds addr.
func (c *PortalClient) CheckStatus(ctx context.Context, addr netip.Addr, account string) (domain.Session, error) {
	u := c.portal.statusURL(addr)
	body, err := c.get(ctx, u)
	if err != nil {
		return domain.Session{}, err
	}
	defer body.Close()
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return domain.Session{}, transportError(http.MethodGet, u, err)
	}
	rec, err := ParseStatus(string(raw))
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{State: rec.Classify(account), Record: rec}, nil
}

// SubmitCredentials posts DDDDD/upass. Redirects are the normal reply and are
// not followed; only transport failures and 4xx/5xx are reported.
func (c *PortalClient) SubmitCredentials(ctx context.Context, addr netip.Addr, account, password string) error {
	u := c.portal.loginURL(addr)
	form := url.Values{}
	form.Set("DDDDD", account)
	form.Set("upass", password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return transportError(http.MethodPost, u, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.client.Do(req)
	if err != nil {
		return transportError(http.MethodPost, u, err)
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return transportError(http.MethodPost, u, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: POST %s: unexpected status %d", domain.ErrTransport, u, resp.StatusCode)
	}
	return nil
}

func (c *PortalClient) get(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transportError(http.MethodGet, u, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(http.MethodGet, u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", domain.ErrTransport, u, resp.StatusCode)
	}
	return resp.Body, nil
}

func transportError(method, u string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, u, err)
}
