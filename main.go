package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/fzxiao233/Live_Record/config"
	"github.com/fzxiao233/Live_Record/live/downloader"
	"github.com/fzxiao233/Live_Record/live/downloader/provbase"
	"github.com/fzxiao233/Live_Record/live/plugins"
	"github.com/fzxiao233/Live_Record/live/recorder"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitStopped = 130
)

type providerFactory func(name string) (provbase.DownloadProvider, error)

func getDownloader(name string) (provbase.DownloadProvider, error) {
	dl, err := downloader.GetDownloader(name)
	if err != nil {
		return nil, err
	}
	return dl, nil
}

// run records once and returns the process exit code. args excludes the program name.
func run(ctx context.Context, args []string, getProvider providerFactory) int {
	if err := config.PrepareConfig(args); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %s\n", err)
		return exitFailure
	}
	config.InitLog()
	conf := config.GetConfig()

	req, err := conf.BuildRequest()
	if err != nil {
		log.WithError(err).Errorf("Invalid configuration")
		return exitFailure
	}

	dl, err := getProvider(conf.Provider)
	if err != nil {
		log.WithError(err).Errorf("Invalid configuration")
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := recorder.NewRecorder(conf, dl)
	rec.Notifier = plugins.GetPluginManager()

	err = rec.Record(ctx, req)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, recorder.ErrStopped):
		return exitStopped
	case recorder.IsDownloadFailure(err):
		// already logged by the recorder
		return exitFailure
	default:
		log.WithError(err).Errorf("Recording could not start")
		return exitFailure
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], getDownloader))
}
