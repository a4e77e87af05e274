// Package timesource provides the network time capability used by the clock
// skew checker: a single Now() that reports the current time according to an
// external authority.
//
// TIME SOURCES:
//   - NTPSource: queries an NTP server with a bounded timeout
//   - HTTPSource: falls back to the Date header of an HTTPS response, which
//     survives networks that block UDP port 123
//   - FallbackSource: tries sources in order until one answers
//
// All failures surface as *TimeQueryError so the caller can treat "could not
// learn the network time" uniformly regardless of transport.
package timesource

import (
	"fmt"
	"net/http"
	"time"

	"github.com/beevik/ntp"
	"github.com/go-resty/resty/v2"
)

// Source reports the current time according to an external authority.
type Source interface {
	Now() (time.Time, error)
}

// TimeQueryError reports that a network time source could not be queried.
type TimeQueryError struct {
	Source string
	Err    error
}

func (e *TimeQueryError) Error() string {
	return fmt.Sprintf("querying network time from %s: %v", e.Source, e.Err)
}

func (e *TimeQueryError) Unwrap() error { return e.Err }

// NTPSource queries an NTP server. The timeout bounds the whole exchange; the
// dispatcher runs before every command, so a slow time server must not hold
// up the handoff.
type NTPSource struct {
	Host    string
	Timeout time.Duration
}

// Now returns the local clock adjusted by the server-reported offset, which is
// the network's view of the current time.
func (s *NTPSource) Now() (time.Time, error) {
	resp, err := ntp.QueryWithOptions(s.Host, ntp.QueryOptions{Timeout: s.Timeout})
	if err != nil {
		return time.Time{}, &TimeQueryError{Source: s.Host, Err: err}
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, &TimeQueryError{Source: s.Host, Err: err}
	}
	return time.Now().Add(resp.ClockOffset), nil
}

// HTTPSource derives the current time from the Date response header of an
// HTTPS endpoint. Coarser than NTP (one-second granularity, no round-trip
// compensation) but good enough to detect the minute-scale skew the checker
// cares about.
type HTTPSource struct {
	URL    string
	Client *resty.Client
}

// NewHTTPSource returns an HTTPSource with a Resty client bounded by timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: resty.New().SetTimeout(timeout),
	}
}

// Now issues a HEAD request and parses the Date header.
func (s *HTTPSource) Now() (time.Time, error) {
	resp, err := s.Client.R().Head(s.URL)
	if err != nil {
		return time.Time{}, &TimeQueryError{Source: s.URL, Err: err}
	}

	date := resp.Header().Get("Date")
	if date == "" {
		return time.Time{}, &TimeQueryError{
			Source: s.URL,
			Err:    fmt.Errorf("response carried no Date header"),
		}
	}

	t, err := http.ParseTime(date)
	if err != nil {
		return time.Time{}, &TimeQueryError{Source: s.URL, Err: err}
	}
	return t, nil
}

// FallbackSource tries each source in order and returns the first answer.
type FallbackSource struct {
	Sources []Source
}

// Now queries the sources in order. Only the last failure is returned; earlier
// ones are implied by the fallback having been consulted at all.
func (s *FallbackSource) Now() (time.Time, error) {
	var lastErr error
	for _, src := range s.Sources {
		t, err := src.Now()
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &TimeQueryError{Source: "fallback", Err: fmt.Errorf("no sources configured")}
	}
	return time.Time{}, lastErr
}
