package provbase

import (
	"context"
	"github.com/fzxiao233/Live_Record/live/interfaces"
)

// DownloadProvider is the external engine that actually records a stream.
// Download blocks until the stream ends, the context is cancelled or the
// engine gives up; retry and resume behaviour belongs to the engine.
type DownloadProvider interface {
	Probe(ctx context.Context, url string, opts *interfaces.DownloadOptions) (*interfaces.StreamInfo, error)
	Download(ctx context.Context, url string, opts *interfaces.DownloadOptions) (*interfaces.RecordResult, error)
}

type Downloader struct {
	Name string
	DownloadProvider
}
