package webhook

import (
	"context"
	"fmt"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/fzxiao233/Live_Record/live/plugins/base"
	"github.com/fzxiao233/Live_Record/utils"
	"net/http"
	"time"
)

type WebhookPluginConfig struct {
	Enable         bool
	CallbackUrl    string
	CallbackHeader map[string]string
	TimeoutSec     int
}

type PluginWebhook struct {
	*base.PluginBase
	Config WebhookPluginConfig
	Client *http.Client
}

func (p *PluginWebhook) PluginInit() {
	p.PluginBase.PluginInit()
}

func (p *PluginWebhook) ReloadConfig() {
	plugin_config := WebhookPluginConfig{}
	err := p.V.Unmarshal(&plugin_config)
	if err != nil {
		p.GetRawLogger().Printf("parse plugin plugin_config error: %s", err)
	}
	p.Config = plugin_config
}

// currentConfig snapshots Config, which ReloadConfig replaces under ConfigMutex.
func (p *PluginWebhook) currentConfig() WebhookPluginConfig {
	p.ConfigMutex.Lock()
	defer p.ConfigMutex.Unlock()
	return p.Config
}

func (c WebhookPluginConfig) enabled() bool {
	return c.Enable && c.CallbackUrl != ""
}

func (p *PluginWebhook) sendMsg(conf WebhookPluginConfig, msgData []byte) error {
	client := p.Client
	if client == nil {
		client = &http.Client{}
	}
	timeout := time.Duration(conf.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range conf.CallbackHeader {
		headers[k] = v
	}
	_, err := utils.HttpPost(ctx, client, conf.CallbackUrl, headers, msgData)
	if err != nil {
		return fmt.Errorf("webhook callback err %w", err)
	}
	return nil
}

func (p *PluginWebhook) LiveStart(session *interfaces.RecordSession) error {
	conf := p.currentConfig()
	if !conf.enabled() {
		return nil
	}

	msgData, err := base.MakeLiveStartMsg(session)
	if err != nil {
		p.GetLogger(session).Warnf("Failed to serialize live start msg, err: %s", err)
		return nil
	}
	if err := p.sendMsg(conf, msgData); err != nil {
		return err
	}
	p.GetLogger(session).Infof("Sent live started to %s", conf.CallbackUrl)
	return nil
}

func (p *PluginWebhook) DownloadStart(session *interfaces.RecordSession) error {
	return nil
}

func (p *PluginWebhook) LiveEnd(session *interfaces.RecordSession) error {
	conf := p.currentConfig()
	if !conf.enabled() {
		return nil
	}
	msgData, err := base.MakeLiveEndMsg(session)
	if err != nil {
		p.GetLogger(session).Warnf("Failed to serialize live end msg, err: %s", err)
		return nil
	}
	if err := p.sendMsg(conf, msgData); err != nil {
		return err
	}
	p.GetLogger(session).Infof("Sent live ended to %s", conf.CallbackUrl)
	return nil
}

func NewPlugin() *PluginWebhook {
	ret := &PluginWebhook{
		PluginBase: &base.PluginBase{
			Name: "webhook",
		},
	}
	ret.Plugin = ret
	return ret
}
