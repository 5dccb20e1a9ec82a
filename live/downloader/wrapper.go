package downloader

import (
	"fmt"
	"github.com/fzxiao233/Live_Record/config"
	"github.com/fzxiao233/Live_Record/live/downloader/provbase"
	"github.com/fzxiao233/Live_Record/live/downloader/provytdlp"
	log "github.com/sirupsen/logrus"
	"time"
)

type Downloader = provbase.Downloader

func GetDownloader(providerName string) (*Downloader, error) {
	if providerName == "" || providerName == "ytdlp" || providerName == "yt-dlp" {
		prov := &provytdlp.DownloaderYtdlp{
			Logger: log.WithField("prov", "ytdlp"),
		}
		if conf := config.GetConfig(); conf != nil {
			prov.Executable = conf.YtdlpPath
			prov.ProgressInterval = time.Duration(conf.ProgressIntervalSec) * time.Second
		}
		return &Downloader{Name: "ytdlp", DownloadProvider: prov}, nil
	}
	return nil, fmt.Errorf("unknown download provider %s", providerName)
}
