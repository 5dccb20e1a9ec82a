package recorder

import (
	"errors"
	"fmt"
)

// ErrStopped is returned when the recording was interrupted through its context.
var ErrStopped = errors.New("recording stopped")

// DownloadFailure is the single error kind surfaced for any fatal downloader
// error: bad url, auth rejected, stream gone, network lost for the whole run.
type DownloadFailure struct {
	URL string
	Err error
}

func (e *DownloadFailure) Error() string {
	return fmt.Sprintf("failed to record %s: %v", e.URL, e.Err)
}

func (e *DownloadFailure) Unwrap() error {
	return e.Err
}

func IsDownloadFailure(err error) bool {
	var failure *DownloadFailure
	return errors.As(err, &failure)
}
