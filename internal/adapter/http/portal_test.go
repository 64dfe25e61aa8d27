package http

import (
	"errors"
	"testing"

	"github.com/njupt-wifi/autologin/internal/domain"
)

func TestStripEnvelope(t *testing.T) {
	got, err := StripEnvelope(`ac{"result":"1","msg":"ok","account":"u1"}x`)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"result":"1","msg":"ok","account":"u1"}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestStripEnvelope_TooShort(t *testing.T) {
	for _, body := range []string{"", "a", "ab"} {
		if _, err := StripEnvelope(body); !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("StripEnvelope(%q) err = %v, want ErrMalformedResponse", body, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	rec, err := ParseStatus(`ac{"result":"1","msg":"ok","account":"u1"}x`)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result != "1" || rec.Message != "ok" || rec.Account != "u1" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestParseStatus_Variants(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		account string
		result  string
	}{
		{"account absent", `d({"result":"0","msg":"not online"})`, "", "0"},
		{"account null", `d({"result":0,"msg":"x","account":null})`, "", "0"},
		{"numeric result", `d({"result":1,"msg":"x","account":"B21@cmcc"})`, "B21@cmcc", "1"},
		{"multibyte envelope", `回调{"result":"1","msg":"成功","account":"a"}）`, "a", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseStatus(tt.body)
			if err != nil {
				t.Fatal(err)
			}
			if rec.Account != tt.account {
				t.Errorf("account = %q, want %q", rec.Account, tt.account)
			}
			if rec.Result != tt.result {
				t.Errorf("result = %q, want %q", rec.Result, tt.result)
			}
		})
	}
}

func TestParseStatus_Malformed(t *testing.T) {
	for _, body := range []string{
		`{"result":"1","msg":"ok"}`, // no envelope: first two chars eaten
		`ac{"result":"1"x`,
		`ac[1,2,3]x`,
		`ac"str"x`,
		`<html>502 Bad Gateway</html>`,
	} {
		if _, err := ParseStatus(body); !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("ParseStatus(%q) err = %v, want ErrMalformedResponse", body, err)
		}
	}
}

func TestExtractAddress(t *testing.T) {
	p := DefaultPortal()
	tests := []struct {
		name string
		page string
		want string
	}{
		{"v4serip", `<script>v4serip='10.160.1.2';v46s=0;</script>`, "10.160.1.2"},
		{"v46ip", `<script>var v46ip = "10.160.3.4"; </script>`, "10.160.3.4"},
		{"first usable wins", `v4serip='';v46ip='10.1.1.1'`, "10.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ExtractAddress(tt.page)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractAddress_Unavailable(t *testing.T) {
	p := DefaultPortal()
	for _, page := range []string{
		"",
		"<html>no marker here</html>",
		"v4serip='not-an-ip'",
		"v46ip='2001:db8::1'",
		"v4serip='10.0.0.256'",
	} {
		if _, err := p.ExtractAddress(page); !errors.Is(err, domain.ErrAddressUnavailable) {
			t.Errorf("ExtractAddress(%q) err = %v, want ErrAddressUnavailable", page, err)
		}
	}
}

func TestNewPortal_Invalid(t *testing.T) {
	if _, err := NewPortal(DefaultLandingURL, DefaultEportalURL, DefaultACIP, "no-such-charset", DefaultMarkers...); err == nil {
		t.Error("want error for unknown charset")
	}
	if _, err := NewPortal(DefaultLandingURL, DefaultEportalURL, DefaultACIP, DefaultCharset); err == nil {
		t.Error("want error for empty marker list")
	}
}
