package domain

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Common validation errors for Resource
var (
	ErrEmptyResourceURL   = errors.New("resource URL cannot be empty")
	ErrInvalidResourceURL = errors.New("invalid resource URL")
)

// Resource identifies one remote tabular file by its URL. Resources are
// immutable: the sweep never rewrites the manifest it was given, it only
// records outcomes against it.
type Resource struct {
	URL string `json:"url"`
}

// NewResource validates rawURL and returns the Resource naming it.
// Only absolute http and https URLs are accepted.
func NewResource(rawURL string) (Resource, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Resource{}, ErrEmptyResourceURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Resource{}, fmt.Errorf("%w: %v", ErrInvalidResourceURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return Resource{}, fmt.Errorf("%w: scheme %q is not http or https", ErrInvalidResourceURL, u.Scheme)
	}

	if u.Host == "" {
		return Resource{}, fmt.Errorf("%w: missing host", ErrInvalidResourceURL)
	}

	return Resource{URL: rawURL}, nil
}

// Name returns the last path element of the resource URL, which is how log
// lines refer to it (for example "airtravel.csv"). It falls back to the host
// when the URL has no usable path.
func (r Resource) Name() string {
	u, err := url.Parse(r.URL)
	if err != nil {
		return r.URL
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return u.Host
	}
	return name
}
