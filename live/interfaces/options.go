package interfaces

// DownloadOptions is the option set passed to the downloader for one run.
// Empty fields leave the downloader's own default in place.
type DownloadOptions struct {
	OutputTemplate     string
	CookiesFromBrowser string
	CookieFile         string
	Continue           bool
	NoOverwrites       bool
	Format             string
	LiveFromStart      bool
	WaitForVideo       string
	Retries            string
	FragmentRetries    string
	ExtraArgs          []string
}

// Flags renders the options as yt-dlp command line flags.
func (o *DownloadOptions) Flags() []string {
	args := make([]string, 0, 16)
	if o.OutputTemplate != "" {
		args = append(args, "--output", o.OutputTemplate)
	}
	if o.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", o.CookiesFromBrowser)
	}
	if o.CookieFile != "" {
		args = append(args, "--cookies", o.CookieFile)
	}
	if o.Continue {
		args = append(args, "--continue")
	} else {
		args = append(args, "--no-continue")
	}
	if o.NoOverwrites {
		args = append(args, "--no-overwrites")
	}
	if o.Format != "" {
		args = append(args, "--format", o.Format)
	}
	if o.LiveFromStart {
		args = append(args, "--live-from-start")
	}
	if o.WaitForVideo != "" {
		args = append(args, "--wait-for-video", o.WaitForVideo)
	}
	if o.Retries != "" {
		args = append(args, "--retries", o.Retries)
	}
	if o.FragmentRetries != "" {
		args = append(args, "--fragment-retries", o.FragmentRetries)
	}
	args = append(args, o.ExtraArgs...)
	return args
}

// StreamInfo is the metadata reported by a probe of the stream.
type StreamInfo struct {
	ID         string
	Title      string
	Uploader   string
	IsLive     bool
	LiveStatus string
}

type RecordResult struct {
	Filename string
	Title    string
}
