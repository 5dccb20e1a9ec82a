package base

import (
	"encoding/json"
	"github.com/fsnotify/fsnotify"
	"github.com/fzxiao233/Live_Record/config"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"sync"
	"time"
)

type PluginBase struct {
	Name        string
	ConfDir     string
	V           *viper.Viper
	ConfigMutex sync.Mutex
	Plugin
}

type Plugin interface {
	ReloadConfig()
}

func (p *PluginBase) String() string {
	return p.Name
}

func (p *PluginBase) GetRawLogger() *log.Entry {
	return log.WithField("plugin", p.Name)
}

func (p *PluginBase) GetLogger(session *interfaces.RecordSession) *log.Entry {
	return session.GetLogger().WithField("plugin", p.Name)
}

func (p *PluginBase) confDir() string {
	if p.ConfDir != "" {
		return p.ConfDir
	}
	if conf := config.GetConfig(); conf != nil && conf.PluginConfDir != "" {
		return conf.PluginConfDir
	}
	return "pluginconf/"
}

func (p *PluginBase) ReloadConfigWrap() bool {
	logger := p.GetRawLogger()
	p.ConfigMutex.Lock()
	defer p.ConfigMutex.Unlock()

	err := p.V.ReadInConfig()
	if err != nil {
		logger.Infof("plugin config file load error: %s, disabling", err)
		return false
	}

	p.Plugin.ReloadConfig()
	return true
}

func (p *PluginBase) PluginInit() {
	v := viper.New()
	v.SetConfigName(p.Name)
	v.SetConfigType("json")
	v.AddConfigPath(p.confDir())
	p.V = v
	if p.ReloadConfigWrap() {
		v.WatchConfig()
		v.OnConfigChange(func(in fsnotify.Event) {
			p.ReloadConfigWrap()
		})
	}
}

func (p *PluginBase) LiveStart(session *interfaces.RecordSession) error {
	return nil
}

func (p *PluginBase) DownloadStart(session *interfaces.RecordSession) error {
	return nil
}

func (p *PluginBase) LiveEnd(session *interfaces.RecordSession) error {
	return nil
}

type LiveStartMsg struct {
	Type      string `json:"type"`
	Session   string `json:"session"`
	Title     string `json:"title"`
	Target    string `json:"target"`
	OutputDir string `json:"output_dir"`
}

func MakeLiveStartMsg(session *interfaces.RecordSession) ([]byte, error) {
	msg := &LiveStartMsg{
		Type:      "start",
		Session:   session.ID,
		Title:     session.Title(),
		Target:    session.Request.URL,
		OutputDir: session.Request.OutputDirectory,
	}
	return json.Marshal(msg)
}

type LiveEndMsg struct {
	Type       string  `json:"type"`
	Session    string  `json:"session"`
	Title      string  `json:"title"`
	Target     string  `json:"target"`
	OutputPath string  `json:"output_path,omitempty"`
	Duration   float64 `json:"duration"`
	Success    bool    `json:"success"`
	Error      string  `json:"error,omitempty"`
}

func MakeLiveEndMsg(session *interfaces.RecordSession) ([]byte, error) {
	end := session.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	msg := &LiveEndMsg{
		Type:       "end",
		Session:    session.ID,
		Title:      session.Title(),
		Target:     session.Request.URL,
		OutputPath: session.OutputPath,
		Duration:   end.Sub(session.StartTime).Seconds(),
		Success:    session.Err == nil,
	}
	if session.Err != nil {
		msg.Error = session.Err.Error()
	}
	return json.Marshal(msg)
}
