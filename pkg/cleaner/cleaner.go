// Package cleaner normalizes raw cell values into the canonical field types:
// canonical URLs, string lists, booleans, trimmed text and registrable domains.
// Every function is total: malformed input yields the field's empty value.
package cleaner

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/agentstation/toolmap/pkg/records"
)

var truthy = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"y":    true,
}

// CanonicalURL returns the canonical form of a URL cell, or nil when v is not
// a non-blank string or does not parse as an absolute URL with a host.
// The scheme is forced to https, fragment and query are dropped, trailing
// slashes are removed and the host is lowercased, with internationalized
// hosts converted to punycode. CanonicalURL is idempotent.
func CanonicalURL(v records.Value) *string {
	s, ok := v.Str()
	if !ok {
		return nil
	}
	return CanonicalURLString(s)
}

// CanonicalURLString is CanonicalURL for a plain string.
func CanonicalURLString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if end := schemeEnd(s); end > 0 {
		scheme := strings.ToLower(s[:end])
		if scheme == "http" {
			scheme = "https"
		}
		s = scheme + s[end:]
	} else {
		s = "https://" + s
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/ \t\r\n")

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	u.Host = strings.ToLower(u.Host)
	if host := u.Hostname(); !isASCII(host) {
		ascii, err := idna.Punycode.ToASCII(host)
		if err != nil {
			return nil
		}
		if port := u.Port(); port != "" {
			ascii = net.JoinHostPort(ascii, port)
		}
		u.Host = ascii
	}

	out := strings.TrimRight(u.String(), "/")
	return &out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// schemeEnd returns the index of "://" when s starts with a valid URL scheme,
// or -1.
func schemeEnd(s string) int {
	end := strings.Index(s, "://")
	if end <= 0 {
		return -1
	}
	for i, r := range s[:end] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return -1
		}
	}
	return end
}

// Listify coerces a cell into a list of non-empty trimmed strings. Strings
// are split on commas. The result is never nil.
func Listify(v records.Value) []string {
	out := []string{}
	var items []string
	switch v.Kind() {
	case records.KindList:
		items, _ = v.Items()
	case records.KindString:
		s, _ := v.Str()
		items = strings.Split(s, ",")
	default:
		return out
	}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Bool reports whether the stringified cell is one of true, 1, yes or y.
func Bool(v records.Value) bool {
	return truthy[strings.ToLower(strings.TrimSpace(v.Text()))]
}

// Text stringifies and trims a cell. Null becomes "".
func Text(v records.Value) string {
	return strings.TrimSpace(v.Text())
}

// Domain returns the registrable domain (eTLD+1) of a canonical URL's host.
// IP hosts, bare public suffixes and single-label hosts yield nil.
func Domain(canonical *string) *string {
	if canonical == nil {
		return nil
	}
	u, err := url.Parse(*canonical)
	if err != nil {
		return nil
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" || net.ParseIP(host) != nil {
		return nil
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil || domain == "" {
		return nil
	}
	return &domain
}
