package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner displays the startup banner with the running version.
func PrintBanner(version string) {
	banner.PrintSimple("Stockd", version)
}
