package plugins

import (
	"errors"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

type countingPlugin struct {
	mu     sync.Mutex
	inited bool
	events []string
	err    error
}

func (c *countingPlugin) record(ev string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return c.err
}

func (c *countingPlugin) PluginInit() { c.inited = true }
func (c *countingPlugin) LiveStart(s *interfaces.RecordSession) error {
	return c.record("start")
}
func (c *countingPlugin) DownloadStart(s *interfaces.RecordSession) error {
	return c.record("download")
}
func (c *countingPlugin) LiveEnd(s *interfaces.RecordSession) error {
	return c.record("end")
}

func TestPluginManagerFansOut(t *testing.T) {
	a := &countingPlugin{}
	b := &countingPlugin{err: errors.New("unreachable")}
	pm := &PluginManager{}
	pm.AddPlugin(a)
	pm.AddPlugin(b)
	assert.True(t, a.inited)
	assert.True(t, b.inited)

	s := interfaces.NewRecordSession(interfaces.DownloadRequest{URL: "https://example.com/live"})
	pm.OnLiveStart(s)
	pm.OnDownloadStart(s)
	pm.OnLiveEnd(s)

	assert.Equal(t, []string{"start", "download", "end"}, a.events)
	assert.Equal(t, []string{"start", "download", "end"}, b.events)
}
