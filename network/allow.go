package network

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/idna"
)

// wildcard at the end of a pattern matches any suffix.
const wildcard = "**"

type pattern struct {
	scheme string
	host   string
	rest   string
	prefix bool
}

// AllowList is the set of URL patterns requests may target.
// A pattern is a URL, optionally ending in ** to match every URL starting with it.
type AllowList struct {
	patterns []pattern
	raw      []string
}

// ParseAllowList compiles patterns. An empty list allows nothing.
func ParseAllowList(patterns []string) (*AllowList, error) {
	list := &AllowList{raw: patterns}

	for _, p := range patterns {
		prefix := strings.HasSuffix(p, wildcard)
		u, err := url.Parse(strings.TrimSuffix(p, wildcard))
		if err != nil {
			return nil, fmt.Errorf("allow pattern %q: %w", p, err)
		}

		scheme, host, rest, err := normalize(u)
		if err != nil {
			return nil, fmt.Errorf("allow pattern %q: %w", p, err)
		}

		if scheme == "" || host == "" {
			return nil, fmt.Errorf("allow pattern %q: scheme and host are required", p)
		}

		list.patterns = append(list.patterns, pattern{
			scheme: scheme,
			host:   host,
			rest:   rest,
			prefix: prefix,
		})
	}

	return list, nil
}

// MustAllowList is ParseAllowList that panics on error.
func MustAllowList(patterns ...string) *AllowList {
	return lo.Must(ParseAllowList(patterns))
}

// Allowed reports whether raw matches any pattern.
func (a *AllowList) Allowed(raw string) bool {
	if a == nil {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil || u.User != nil {
		return false
	}

	scheme, host, rest, err := normalize(u)
	if err != nil {
		return false
	}

	return lo.ContainsBy(a.patterns, func(p pattern) bool {
		if p.scheme != scheme || p.host != host {
			return false
		}

		if p.prefix {
			return strings.HasPrefix(rest, p.rest)
		}

		return rest == p.rest
	})
}

// Patterns returns the patterns the list was built from.
func (a *AllowList) Patterns() []string {
	return a.raw
}

func normalize(u *url.URL) (scheme, host, rest string, err error) {
	scheme = strings.ToLower(u.Scheme)

	host, err = idna.Lookup.ToASCII(strings.ToLower(u.Hostname()))
	if err != nil {
		return
	}

	if port := u.Port(); port != "" && port != defaultPort(scheme) {
		host += ":" + port
	}

	rest = u.EscapedPath()
	if rest == "" {
		rest = "/"
	}

	if u.RawQuery != "" || u.ForceQuery {
		rest += "?" + u.RawQuery
	}

	return
}

func defaultPort(scheme string) string {
	switch scheme {
	case "http":
		return "80"
	case "https":
		return "443"
	default:
		return ""
	}
}
