package http

import (
	"fmt"
	"net/netip"
	"regexp"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"github.com/njupt-wifi/autologin/internal/domain"
)

// Fixed contract of the campus controller.
const (
	DefaultLandingURL = "http://10.10.244.11/"
	DefaultEportalURL = "http://10.10.244.11:801/eportal/"
	DefaultACIP       = "10.255.252.150"
	DefaultCharset    = "gbk"
)

// DefaultMarkers are tried in order. Firmware revisions differ in which
// variable carries the client address on the landing page.
var DefaultMarkers = []string{"v4serip", "v46ip"}

// Portal is the immutable wire context handed to PortalClient.
type Portal struct {
	LandingURL string
	EportalURL string
	ACIP       string

	encoding encoding.Encoding
	markers  []*regexp.Regexp
}

// NewPortal compiles the marker patterns and resolves the page charset.
func NewPortal(landingURL, eportalURL, acIP, charsetLabel string, markers ...string) (*Portal, error) {
	enc, _ := charset.Lookup(charsetLabel)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", charsetLabel)
	}
	if len(markers) == 0 {
		return nil, fmt.Errorf("at least one address marker required")
	}
	p := &Portal{
		LandingURL: landingURL,
		EportalURL: eportalURL,
		ACIP:       acIP,
		encoding:   enc,
	}
	for _, m := range markers {
		re, err := regexp.Compile(regexp.QuoteMeta(m) + `\s*=\s*['"]([^'"]*)['"]`)
		if err != nil {
			return nil, fmt.Errorf("marker %q: %w", m, err)
		}
		p.markers = append(p.markers, re)
	}
	return p, nil
}

// DefaultPortal returns the production controller contract.
func DefaultPortal() *Portal {
	p, err := NewPortal(DefaultLandingURL, DefaultEportalURL, DefaultACIP, DefaultCharset, DefaultMarkers...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Portal) statusURL(addr netip.Addr) string {
	return fmt.Sprintf("%s?c=ACSetting&a=checkScanIP&wlanuserip=%s", p.EportalURL, addr)
}

func (p *Portal) loginURL(addr netip.Addr) string {
	return fmt.Sprintf("%s?c=ACSetting&a=Login&wlanuserip=%s&wlanacip=%s", p.EportalURL, addr, p.ACIP)
}

// ExtractAddress returns the first marker assignment holding an IPv4 literal.
func (p *Portal) ExtractAddress(page string) (netip.Addr, error) {
	for _, re := range p.markers {
		m := re.FindStringSubmatch(page)
		if m == nil {
			continue
		}
		addr, err := netip.ParseAddr(m[1])
		if err == nil && addr.Is4() {
			return addr, nil
		}
	}
	return netip.Addr{}, domain.ErrAddressUnavailable
}
