package interfaces

import "context"

// PageFetcher retrieves a remote page's HTML body. Implementations fail only
// when every configured transport path has been exhausted.
type PageFetcher interface {
	FetchHTML(ctx context.Context, targetURL string) (string, error)
}
