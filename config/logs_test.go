package config

import (
	"bytes"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLogWrapHook(t *testing.T) {
	buf := &bytes.Buffer{}
	hook := &LogWrapHook{
		Enabled:  true,
		LogLevel: logrus.InfoLevel,
		Hook: &WriterHook{
			Out:       buf,
			Formatter: &logrus.TextFormatter{DisableColors: true, DisableTimestamp: true},
		},
	}

	logger := logrus.New()
	entry := logrus.NewEntry(logger)

	entry.Level = logrus.DebugLevel
	entry.Message = "too verbose"
	assert.NoError(t, hook.Fire(entry))
	assert.Equal(t, 0, buf.Len())

	entry.Level = logrus.WarnLevel
	entry.Message = "stream went offline"
	assert.NoError(t, hook.Fire(entry))
	assert.Contains(t, buf.String(), "stream went offline")

	buf.Reset()
	hook.Enabled = false
	assert.NoError(t, hook.Fire(entry))
	assert.Equal(t, 0, buf.Len())
}
