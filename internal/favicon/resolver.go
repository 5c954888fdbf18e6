// Package favicon maps bookmark urls to icon addresses, loads them, and
// renders them as terminal cells.
package favicon

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// DefaultTemplate is the icon service address; {domain} and {size} are filled in.
const DefaultTemplate = "https://www.google.com/s2/favicons?domain={domain}&sz={size}"

// DefaultSize is the icon size requested from the service.
const DefaultSize = 128

// ErrNoIcon means no icon address can be derived from a url.
var ErrNoIcon = errors.New("no icon available")

// Resolver derives icon addresses from bookmark urls.
type Resolver struct {
	Template string
	Size     int
}

// NewResolver returns a Resolver, falling back to the defaults for empty values.
func NewResolver(template string, size int) Resolver {
	if template == "" {
		template = DefaultTemplate
	}
	if size <= 0 {
		size = DefaultSize
	}
	return Resolver{Template: template, Size: size}
}

// Resolve returns the icon address for rawURL.
// ok is false when rawURL has no scheme or host.
func (r Resolver) Resolve(rawURL string) (string, bool) {
	host, err := Host(rawURL)
	if err != nil {
		return "", false
	}

	template := r.Template
	if template == "" {
		template = DefaultTemplate
	}
	size := r.Size
	if size <= 0 {
		size = DefaultSize
	}

	replacer := strings.NewReplacer(
		"{domain}", url.QueryEscape(host),
		"{size}", strconv.Itoa(size),
	)
	return replacer.Replace(template), true
}

// Host extracts the host name of an absolute url.
func Host(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", ErrNoIcon
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", ErrNoIcon
	}
	return u.Hostname(), nil
}
