package base

import (
	"encoding/json"
	"errors"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func newSession() *interfaces.RecordSession {
	s := interfaces.NewRecordSession(interfaces.DownloadRequest{
		URL:             "https://www.youtube.com/watch?v=live123",
		OutputDirectory: "/srv/records",
	})
	s.SetInfo(&interfaces.StreamInfo{Title: "Late night stream"})
	return s
}

func TestMakeLiveStartMsg(t *testing.T) {
	s := newSession()
	data, err := MakeLiveStartMsg(s)
	require.NoError(t, err)

	msg := LiveStartMsg{}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "start", msg.Type)
	assert.Equal(t, s.ID, msg.Session)
	assert.Equal(t, "Late night stream", msg.Title)
	assert.Equal(t, "/srv/records", msg.OutputDir)
}

func TestMakeLiveEndMsg(t *testing.T) {
	s := newSession()
	s.StartTime = time.Now().Add(-time.Minute)
	s.EndTime = s.StartTime.Add(30 * time.Second)
	s.OutputPath = "/srv/records/Late night stream.mp4"

	data, err := MakeLiveEndMsg(s)
	require.NoError(t, err)
	msg := LiveEndMsg{}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "end", msg.Type)
	assert.True(t, msg.Success)
	assert.Equal(t, "", msg.Error)
	assert.InDelta(t, 30, msg.Duration, 0.001)
	assert.Equal(t, s.OutputPath, msg.OutputPath)

	s.Err = errors.New("authentication rejected")
	data, err = MakeLiveEndMsg(s)
	require.NoError(t, err)
	msg = LiveEndMsg{}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.False(t, msg.Success)
	assert.Equal(t, "authentication rejected", msg.Error)
}
