package main

import (
	"context"
	"errors"
	"github.com/fzxiao233/Live_Record/live/downloader/provbase"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

type fakeProvider struct {
	err     error
	started chan struct{}
	// block makes Download wait for cancellation, like yt-dlp on a live stream.
	block bool
	urls  []string
}

func (f *fakeProvider) Probe(ctx context.Context, url string, opts *interfaces.DownloadOptions) (*interfaces.StreamInfo, error) {
	return &interfaces.StreamInfo{Title: "Late night stream", IsLive: true}, nil
}

func (f *fakeProvider) Download(ctx context.Context, url string, opts *interfaces.DownloadOptions) (*interfaces.RecordResult, error) {
	f.urls = append(f.urls, url)
	if f.started != nil {
		close(f.started)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &interfaces.RecordResult{Filename: filepath.Join(filepath.Dir(opts.OutputTemplate), "Late night stream.mp4")}, nil
}

func factory(prov provbase.DownloadProvider) providerFactory {
	return func(name string) (provbase.DownloadProvider, error) {
		return prov, nil
	}
}

func writeMainConfig(t *testing.T, url string, extra string) []string {
	dir := t.TempDir()
	conf := `{
  "Url": "` + url + `",
  "DownloadDir": "` + filepath.ToSlash(filepath.Join(dir, "records")) + `",
  "PluginConfDir": "` + filepath.ToSlash(filepath.Join(dir, "pluginconf")) + `",
  "LogLevel": "error"` + extra + `
}`
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0644))
	return []string{"-config", path}
}

const liveUrl = "https://www.youtube.com/watch?v=live123"

func TestRunSuccess(t *testing.T) {
	prov := &fakeProvider{}
	args := writeMainConfig(t, liveUrl, "")

	assert.Equal(t, exitOK, run(context.Background(), args, factory(prov)))
	assert.Equal(t, []string{liveUrl}, prov.urls)
	_, err := os.Stat(filepath.Join(filepath.Dir(args[1]), "records"))
	assert.NoError(t, err)
}

func TestRunDownloadFailure(t *testing.T) {
	prov := &fakeProvider{err: errors.New("ERROR: This live event will begin in a few moments")}
	assert.Equal(t, exitFailure, run(context.Background(), writeMainConfig(t, liveUrl, ""), factory(prov)))
}

func TestRunStopped(t *testing.T) {
	prov := &fakeProvider{block: true, started: make(chan struct{})}
	args := writeMainConfig(t, liveUrl, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	code := make(chan int, 1)
	go func() {
		code <- run(ctx, args, factory(prov))
	}()
	<-prov.started
	cancel()
	assert.Equal(t, exitStopped, <-code)
}

func TestRunMissingUrl(t *testing.T) {
	prov := &fakeProvider{}
	assert.Equal(t, exitFailure, run(context.Background(), writeMainConfig(t, "", ""), factory(prov)))
	assert.Empty(t, prov.urls)
}

func TestRunUnknownProvider(t *testing.T) {
	args := writeMainConfig(t, liveUrl, `,
  "Provider": "streamlink"`)
	assert.Equal(t, exitFailure, run(context.Background(), args, getDownloader))
}

func TestRunBadArgs(t *testing.T) {
	assert.Equal(t, exitFailure, run(context.Background(), []string{"-no-such-flag"}, factory(&fakeProvider{})))
}
