package recorder

import (
	"context"
	"errors"
	"fmt"
	"github.com/fzxiao233/Live_Record/config"
	"github.com/fzxiao233/Live_Record/live/downloader/provbase"
	"github.com/fzxiao233/Live_Record/live/downloader/siterule"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/fzxiao233/Live_Record/utils"
	"path/filepath"
	"time"
)

const DefaultOutputTemplate = "%(title)s.%(ext)s"

var ErrEmptyUrl = errors.New("empty stream url")

type Notifier interface {
	OnLiveStart(session *interfaces.RecordSession)
	OnDownloadStart(session *interfaces.RecordSession)
	OnLiveEnd(session *interfaces.RecordSession)
}

type Recorder struct {
	Downloader provbase.DownloadProvider
	Notifier   Notifier
	// Upload moves a finished recording into UploadDir.
	Upload func(ctx context.Context, src string, dst string) error

	OutputTemplate  string
	Format          string
	LiveFromStart   bool
	WaitForVideo    string
	Retries         string
	FragmentRetries string
	ExtraArgs       []string
	SiteRules       []config.SiteRuleEntry
	Probe           bool
	UploadDir       string
}

func NewRecorder(conf *config.MainConfig, downloader provbase.DownloadProvider) *Recorder {
	return &Recorder{
		Downloader:      downloader,
		Upload:          utils.MoveFiles,
		OutputTemplate:  conf.OutputTemplate,
		Format:          conf.Format,
		LiveFromStart:   conf.LiveFromStart,
		WaitForVideo:    conf.WaitForVideo,
		Retries:         conf.Retries,
		FragmentRetries: conf.FragmentRetries,
		ExtraArgs:       conf.ExtraArgs,
		SiteRules:       conf.SiteRules,
		Probe:           conf.Probe,
		UploadDir:       conf.UploadDir,
	}
}

// BuildOptions turns a request into the downloader option set.
func (r *Recorder) BuildOptions(req interfaces.DownloadRequest) interfaces.DownloadOptions {
	tmpl := r.OutputTemplate
	if tmpl == "" {
		tmpl = DefaultOutputTemplate
	}
	opts := interfaces.DownloadOptions{
		OutputTemplate:  filepath.Join(req.OutputDirectory, tmpl),
		Continue:        req.Resume,
		NoOverwrites:    true,
		Format:          r.Format,
		LiveFromStart:   r.LiveFromStart,
		WaitForVideo:    r.WaitForVideo,
		Retries:         r.Retries,
		FragmentRetries: r.FragmentRetries,
		ExtraArgs:       r.ExtraArgs,
	}
	switch req.Credentials.Kind {
	case interfaces.CREDENTIAL_BROWSER:
		opts.CookiesFromBrowser = req.Credentials.Browser
	case interfaces.CREDENTIAL_COOKIE_FILE:
		opts.CookieFile = req.Credentials.CookieFile
	}
	siterule.ApplySiteRule(r.SiteRules, req.URL, &opts)
	return opts
}

func (r *Recorder) notify(f func(Notifier)) {
	if r.Notifier != nil {
		f(r.Notifier)
	}
}

// Record makes sure the output directory exists and runs the downloader once.
// Any fatal downloader error comes back as a *DownloadFailure.
func (r *Recorder) Record(ctx context.Context, req interfaces.DownloadRequest) error {
	session := interfaces.NewRecordSession(req)
	logger := session.GetLogger()

	if req.URL == "" {
		logger.Errorf("Refusing to record: %s", ErrEmptyUrl)
		return &DownloadFailure{URL: req.URL, Err: ErrEmptyUrl}
	}
	if _, err := utils.MakeDir(req.OutputDirectory); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", req.OutputDirectory, err)
	}

	session.Options = r.BuildOptions(req)
	opts := &session.Options

	if r.Probe {
		info, err := r.Downloader.Probe(ctx, req.URL, opts)
		if err != nil {
			logger.WithError(err).Warnf("Failed to probe stream, recording anyway")
		} else if info != nil {
			session.SetInfo(info)
			logger = session.GetLogger()
			if !info.IsLive {
				logger.Warnf("Stream is not live yet (status %q)", info.LiveStatus)
			}
		}
	}

	logger.Infof("Starting livestream recording. Output directory: %s, credentials: %s, resume: %v",
		req.OutputDirectory, req.Credentials, req.Resume)
	logger.Debugf("Downloader options: %v", opts.Flags())
	r.notify(func(n Notifier) { n.OnLiveStart(session) })
	r.notify(func(n Notifier) { n.OnDownloadStart(session) })

	result, err := r.Downloader.Download(ctx, req.URL, opts)
	session.EndTime = time.Now()
	if err != nil {
		if ctx.Err() != nil {
			session.Err = ErrStopped
			logger.Infof("Recording stopped after %s", session.EndTime.Sub(session.StartTime).Truncate(time.Second))
		} else {
			session.Err = &DownloadFailure{URL: req.URL, Err: err}
			logger.WithError(err).Errorf("Downloader reported a fatal error")
		}
		r.notify(func(n Notifier) { n.OnLiveEnd(session) })
		return session.Err
	}

	if result != nil {
		session.OutputPath = result.Filename
		if session.Info == nil && result.Title != "" {
			session.SetInfo(&interfaces.StreamInfo{Title: result.Title})
			logger = session.GetLogger()
		}
	}
	logger.Infof("Recording finished (stream ended), output %s", session.OutputPath)

	if r.UploadDir != "" && session.OutputPath != "" && r.Upload != nil {
		if err := r.Upload(ctx, session.OutputPath, r.UploadDir); err != nil {
			logger.WithError(err).Warnf("Failed to move %s to %s", session.OutputPath, r.UploadDir)
		} else {
			logger.Infof("Moved %s to %s", session.OutputPath, r.UploadDir)
		}
	}
	r.notify(func(n Notifier) { n.OnLiveEnd(session) })
	return nil
}
