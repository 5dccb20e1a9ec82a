package provytdlp

import (
	"context"
	"fmt"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/lrstanley/go-ytdlp"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"strings"
	"sync"
	"time"
)

const DefaultProgressInterval = 30 * time.Second

// finalPathMarker prefixes the line yt-dlp prints once the output file is in
// its final place, after merging and any post-processing.
const finalPathMarker = "LIVEREC_FINAL_PATH:"

type DownloaderYtdlp struct {
	Executable       string
	ProgressInterval time.Duration
	Logger           *log.Entry
}

func (d *DownloaderYtdlp) logger() *log.Entry {
	if d.Logger != nil {
		return d.Logger
	}
	return log.WithField("prov", "ytdlp")
}

func (d *DownloaderYtdlp) newCommand() *ytdlp.Command {
	dl := ytdlp.New()
	if d.Executable != "" {
		dl = dl.SetExecutable(d.Executable)
	}
	return dl
}

// buildCommand maps every option onto the yt-dlp builder, mirroring DownloadOptions.Flags.
func (d *DownloaderYtdlp) buildCommand(opts *interfaces.DownloadOptions) *ytdlp.Command {
	dl := d.newCommand()
	if opts.OutputTemplate != "" {
		dl = dl.Output(opts.OutputTemplate)
	}
	if opts.CookiesFromBrowser != "" {
		dl = dl.CookiesFromBrowser(opts.CookiesFromBrowser)
	}
	if opts.CookieFile != "" {
		dl = dl.Cookies(opts.CookieFile)
	}
	if opts.Continue {
		dl = dl.Continue()
	} else {
		dl = dl.NoContinue()
	}
	if opts.NoOverwrites {
		dl = dl.NoOverwrites()
	}
	if opts.Format != "" {
		dl = dl.Format(opts.Format)
	}
	if opts.LiveFromStart {
		dl = dl.LiveFromStart()
	}
	if opts.WaitForVideo != "" {
		dl = dl.WaitForVideo(opts.WaitForVideo)
	}
	if opts.Retries != "" {
		dl = dl.Retries(opts.Retries)
	}
	if opts.FragmentRetries != "" {
		dl = dl.FragmentRetries(opts.FragmentRetries)
	}
	return dl
}

// infoCommand only asks for the info json, with the same cookies the download will use.
func (d *DownloaderYtdlp) infoCommand(opts *interfaces.DownloadOptions) *ytdlp.Command {
	dl := d.newCommand().DumpJSON().SkipDownload().NoWarnings()
	if opts.CookiesFromBrowser != "" {
		dl = dl.CookiesFromBrowser(opts.CookiesFromBrowser)
	}
	if opts.CookieFile != "" {
		dl = dl.Cookies(opts.CookieFile)
	}
	return dl
}

func (d *DownloaderYtdlp) Probe(ctx context.Context, url string, opts *interfaces.DownloadOptions) (*interfaces.StreamInfo, error) {
	dl := d.infoCommand(opts)
	res, err := dl.Run(ctx, runArgs(opts, url)...)
	if err != nil {
		return nil, wrapRunError("probe", res, err)
	}
	return parseProbeOutput(res.Stdout)
}

func (d *DownloaderYtdlp) Download(ctx context.Context, url string, opts *interfaces.DownloadOptions) (*interfaces.RecordResult, error) {
	logger := d.logger()
	dl := d.buildCommand(opts).
		Print("after_move:" + finalPathMarker + "%(filepath)s").
		NoSimulate()

	interval := d.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	result := &interfaces.RecordResult{}
	var resultMu sync.Mutex
	dl.ProgressFunc(interval, func(update ytdlp.ProgressUpdate) {
		resultMu.Lock()
		if update.Filename != "" {
			result.Filename = update.Filename
		}
		if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" {
			result.Title = *update.Info.Title
		}
		resultMu.Unlock()

		fields := log.Fields{
			"status":     update.Status,
			"downloaded": formatBytes(int64(update.DownloadedBytes)),
		}
		if !update.Started.IsZero() {
			fields["elapsed"] = time.Since(update.Started).Truncate(time.Second).String()
		}
		logger.WithFields(fields).Debugf("Recording %s", update.Filename)
	})

	logger.Debugf("Running yt-dlp with %v", append(opts.Flags(), url))
	res, err := dl.Run(ctx, runArgs(opts, url)...)
	if err != nil {
		return nil, wrapRunError("download", res, err)
	}

	resultMu.Lock()
	defer resultMu.Unlock()
	final := &interfaces.RecordResult{Filename: result.Filename, Title: result.Title}
	if path := parseFinalPath(res.Stdout); path != "" {
		final.Filename = path
	} else if final.Filename != "" {
		logger.Warnf("yt-dlp did not report the final output path, using %s", final.Filename)
	}
	return final, nil
}

// runArgs is the positional part of a yt-dlp run: extra flags first, then the url.
func runArgs(opts *interfaces.DownloadOptions, url string) []string {
	return append(append([]string{}, opts.ExtraArgs...), url)
}

// parseFinalPath returns the last path printed after yt-dlp moved the finished file.
func parseFinalPath(stdout string) string {
	path := ""
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimRight(line, "\r")
		if idx := strings.Index(line, finalPathMarker); idx >= 0 {
			if p := strings.TrimSpace(line[idx+len(finalPathMarker):]); p != "" {
				path = p
			}
		}
	}
	return path
}

func wrapRunError(stage string, res *ytdlp.Result, err error) error {
	if res != nil {
		if line := lastLine(res.Stderr); line != "" {
			return fmt.Errorf("yt-dlp %s failed: %w (%s)", stage, err, line)
		}
	}
	return fmt.Errorf("yt-dlp %s failed: %w", stage, err)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

// parseProbeOutput reads the first info json line printed by --dump-json.
func parseProbeOutput(stdout string) (*interfaces.StreamInfo, error) {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("yt-dlp probe returned invalid json")
		}
		info := gjson.Parse(line)
		liveStatus := info.Get("live_status").String()
		return &interfaces.StreamInfo{
			ID:         info.Get("id").String(),
			Title:      info.Get("title").String(),
			Uploader:   info.Get("uploader").String(),
			IsLive:     info.Get("is_live").Bool() || liveStatus == "is_live",
			LiveStatus: liveStatus,
		}, nil
	}
	return nil, fmt.Errorf("yt-dlp probe returned no output")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
