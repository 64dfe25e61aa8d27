package http

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/njupt-wifi/autologin/internal/domain"
)

// StripEnvelope drops the two leading and one trailing characters the
// controller wraps around the status JSON.
func StripEnvelope(body string) (string, error) {
	r := []rune(body)
	if len(r) < 3 {
		return "", fmt.Errorf("%w: body too short (%d chars)", domain.ErrMalformedResponse, len(r))
	}
	return string(r[2 : len(r)-1]), nil
}

// ParseStatus decodes an enveloped status body. result may be a string or a
// number depending on firmware; a null or empty account means none on record.
func ParseStatus(body string) (domain.StatusRecord, error) {
	inner, err := StripEnvelope(body)
	if err != nil {
		return domain.StatusRecord{}, err
	}
	if !gjson.Valid(inner) {
		return domain.StatusRecord{}, fmt.Errorf("%w: invalid JSON %q", domain.ErrMalformedResponse, inner)
	}
	res := gjson.Parse(inner)
	if !res.IsObject() {
		return domain.StatusRecord{}, fmt.Errorf("%w: not an object", domain.ErrMalformedResponse)
	}
	fields := res.Map()
	return domain.StatusRecord{
		Result:  fields["result"].String(),
		Message: fields["msg"].String(),
		Account: fields["account"].String(),
	}, nil
}
