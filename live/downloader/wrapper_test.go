package downloader

import (
	"github.com/fzxiao233/Live_Record/live/downloader/provytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestGetDownloader(t *testing.T) {
	for _, name := range []string{"", "ytdlp", "yt-dlp"} {
		d, err := GetDownloader(name)
		require.NoError(t, err)
		assert.Equal(t, "ytdlp", d.Name)
		_, ok := d.DownloadProvider.(*provytdlp.DownloaderYtdlp)
		assert.True(t, ok)
	}

	_, err := GetDownloader("streamlink")
	assert.Error(t, err)
}
