package plugins

import (
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/fzxiao233/Live_Record/live/plugins/redispub"
	"github.com/fzxiao233/Live_Record/live/plugins/webhook"
	"sync"
)

type PluginCallback interface {
	PluginInit()
	LiveStart(s *interfaces.RecordSession) error
	DownloadStart(s *interfaces.RecordSession) error
	LiveEnd(s *interfaces.RecordSession) error
}

type PluginManager struct {
	plugins []PluginCallback
}

func (p *PluginManager) AddPlugin(plug PluginCallback) {
	plug.PluginInit()
	p.plugins = append(p.plugins, plug)
}

func (p *PluginManager) fire(session *interfaces.RecordSession, event string, call func(PluginCallback) error) {
	var wg sync.WaitGroup
	wg.Add(len(p.plugins))
	for _, plug := range p.plugins {
		go func(callback PluginCallback) {
			defer wg.Done()
			err := call(callback)
			if err != nil {
				session.GetLogger().Errorf("plugin %s %s error: %s", callback, event, err)
			}
		}(plug)
	}
	wg.Wait()
}

func (p *PluginManager) OnLiveStart(session *interfaces.RecordSession) {
	p.fire(session, "livestart", func(c PluginCallback) error { return c.LiveStart(session) })
}

func (p *PluginManager) OnDownloadStart(session *interfaces.RecordSession) {
	p.fire(session, "downloadstart", func(c PluginCallback) error { return c.DownloadStart(session) })
}

func (p *PluginManager) OnLiveEnd(session *interfaces.RecordSession) {
	p.fire(session, "liveend", func(c PluginCallback) error { return c.LiveEnd(session) })
}

var ManagerMutex sync.Mutex
var Manager *PluginManager

func GetPluginManager() *PluginManager {
	ManagerMutex.Lock()
	defer ManagerMutex.Unlock()
	if Manager == nil {
		pm := &PluginManager{}
		pm.AddPlugin(webhook.NewPlugin())
		pm.AddPlugin(redispub.NewPlugin())
		Manager = pm
	}
	return Manager
}
