package interfaces

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"time"
)

// RecordSession tracks a single recording run of the process.
type RecordSession struct {
	ID         string
	Request    DownloadRequest
	Options    DownloadOptions
	Info       *StreamInfo
	StartTime  time.Time
	EndTime    time.Time
	OutputPath string
	Err        error

	logger *log.Entry
}

func NewRecordSession(req DownloadRequest) *RecordSession {
	s := &RecordSession{
		ID:        uuid.NewString(),
		Request:   req,
		StartTime: time.Now(),
	}
	s.logger = log.WithField("session", s.ID).WithField("url", req.URL)
	return s
}

func (s *RecordSession) GetLogger() *log.Entry {
	return s.logger
}

func (s *RecordSession) Title() string {
	if s.Info != nil && s.Info.Title != "" {
		return s.Info.Title
	}
	return ""
}

func (s *RecordSession) SetInfo(info *StreamInfo) {
	s.Info = info
	if info != nil && info.Title != "" {
		s.logger = s.logger.WithField("title", info.Title)
	}
}
