package relay

import (
	"net/url"
	"strings"
)

// Relay wraps a target URL into a proxied request URL. Relays that return a
// JSON envelope instead of the raw body set JSONEnvelope so the fetcher
// unwraps {"contents": ...} before the sanity check.
type Relay struct {
	Name         string
	JSONEnvelope bool
	Build        func(targetURL string) string
}

// DefaultRelays returns the ordered relay chain: the trusted local
// passthrough first, then the public relays in decreasing reliability.
// Failure on one relay moves immediately to the next; there is no per-relay
// retry or backoff.
func DefaultRelays(localRelayURL string) []Relay {
	local := strings.TrimSuffix(localRelayURL, "/")
	return []Relay{
		{
			Name: "local",
			Build: func(target string) string {
				return local + "/proxy?url=" + url.QueryEscape(target)
			},
		},
		{
			Name:         "allorigins",
			JSONEnvelope: true,
			Build: func(target string) string {
				return "https://api.allorigins.win/get?url=" + url.QueryEscape(target)
			},
		},
		{
			Name: "corsproxy",
			Build: func(target string) string {
				return "https://corsproxy.io/?" + url.QueryEscape(target)
			},
		},
		{
			Name: "codetabs",
			Build: func(target string) string {
				return "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(target)
			},
		},
		{
			Name: "thingproxy",
			Build: func(target string) string {
				return "https://thingproxy.freeboard.io/fetch/" + target
			},
		},
	}
}
