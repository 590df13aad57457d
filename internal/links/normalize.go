package links

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"
)

var (
	errNotAbsolute = errors.New("url must be absolute")
	errScheme      = errors.New("url scheme must be http or https")
)

// ValidateURL checks that raw is an absolute http or https URL with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("could not parse URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return errNotAbsolute
	}
	if s := strings.ToLower(u.Scheme); s != "http" && s != "https" {
		return errScheme
	}

	return nil
}

// NormalizeURL returns a canonical representation of a URL so that spellings
// of the same address share one short code:
//   - Lower-case the scheme and host
//   - Empty path becomes "/", other paths are cleaned without a trailing slash
//   - Drop default ports (http:80, https:443), keep non-default ports
//   - Sort query parameters by key and by value
//   - Remove the fragment
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)

	if u.Path == "" {
		u.Path = "/"
	}
	cleaned := path.Clean(u.Path)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	u.Path = cleaned
	u.RawPath = ""

	host := strings.ToLower(u.Host)
	if h, port, err := net.SplitHostPort(host); err == nil {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			host = h
			if strings.Contains(h, ":") {
				host = "[" + h + "]"
			}
		}
	}
	u.Host = host

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			sort.Strings(q[k])
		}
		// Encode sorts keys
		u.RawQuery = q.Encode()
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}
