package reader

import (
	"errors"
	"net/url"
	"strings"

	"github.com/fwojciec/readable"
)

// ParseTarget parses the part of the request path after the leading slash
// as an absolute URL.
//
// Browsers and proxies sometimes collapse the double slash after the scheme
// ("https:/example.com"); for http and https such URLs are repaired before
// the host check. Returns EINVALID if the result is not an absolute URL.
func ParseTarget(raw string) (*url.URL, error) {
	u, err := parseURL(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, readable.Errorf(readable.EINVALID, "relative URL without a base")
	}
	if !isHTTP(u) {
		return u, nil
	}

	if u.Host == "" {
		rest := strings.TrimLeft(raw[len(u.Scheme)+1:], "/")
		if u, err = parseURL(u.Scheme + "://" + rest); err != nil {
			return nil, err
		}
	}
	if u.Host == "" {
		return nil, readable.Errorf(readable.EINVALID, "empty host")
	}
	return u, nil
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, readable.Errorf(readable.EINVALID, "%v", err)
	}
	return u, nil
}

func isHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
