package services

import (
	"net/url"
	"strings"
)

// HostParams are the query parameters the host page accepts.
type HostParams struct {
	SourceURL  string // csv: alternate data source
	Debug      bool   // debug: show the status box
	Search     string // q: free-text search
	Top100Only bool   // top100: Top-100 filter
	CacheBust  string // cb: opaque token appended to the fetch
}

// ParseHostParams reads HostParams from a query string. Unknown or malformed
// values fall back to their zero value.
func ParseHostParams(q url.Values) HostParams {
	return HostParams{
		SourceURL:  strings.TrimSpace(q.Get("csv")),
		Debug:      IsAffirmative(q.Get("debug")),
		Search:     strings.TrimSpace(q.Get("q")),
		Top100Only: IsAffirmative(q.Get("top100")),
		CacheBust:  strings.TrimSpace(q.Get("cb")),
	}
}

// ViewState is the initial view the parameters describe.
func (p HostParams) ViewState() ViewState {
	return ViewState{}.WithSearch(p.Search).WithTop100(p.Top100Only)
}

// Encode writes the parameters back as a query string, omitting defaults.
func (p HostParams) Encode() string {
	v := url.Values{}
	if p.SourceURL != "" {
		v.Set("csv", p.SourceURL)
	}
	if p.Debug {
		v.Set("debug", "1")
	}
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	if p.Top100Only {
		v.Set("top100", "1")
	}
	if p.CacheBust != "" {
		v.Set("cb", p.CacheBust)
	}
	return v.Encode()
}
