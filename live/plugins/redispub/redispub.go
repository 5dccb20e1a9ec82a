package redispub

import (
	"context"
	"fmt"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/fzxiao233/Live_Record/live/plugins/base"
	"github.com/go-redis/redis/v8"
	"time"
)

type PluginRedisPub struct {
	*base.PluginBase
	Config      RedisPubPluginConfig
	RedisClient *redis.Client
}

type RedisPubPluginConfig struct {
	Enable bool

	ServerAddress   string
	AuthPassword    string
	AuthUser        string
	RedisKey        string
	UseRedisStreams bool
}

func (p *PluginRedisPub) PluginInit() {
	p.PluginBase.PluginInit()
}

func (p *PluginRedisPub) ReloadConfig() {
	logger := p.GetRawLogger()
	plugin_config := RedisPubPluginConfig{}
	err := p.V.Unmarshal(&plugin_config)
	if err != nil {
		logger.Printf("parse plugin plugin_config error: %s", err)
	}
	p.Config = plugin_config
	p.initRedis()
}

func (p *PluginRedisPub) initRedis() *redis.Client {
	if p.RedisClient != nil {
		_ = p.RedisClient.Close()
		p.RedisClient = nil
	}
	if !p.Config.Enable {
		return nil
	}
	RedisClient := redis.NewClient(
		&redis.Options{
			Addr:     p.Config.ServerAddress,
			Username: p.Config.AuthUser,
			Password: p.Config.AuthPassword,
			DB:       0,
		})
	p.RedisClient = RedisClient
	return RedisClient
}

// current snapshots the config and client, which ReloadConfig swaps under ConfigMutex.
func (p *PluginRedisPub) current() (RedisPubPluginConfig, *redis.Client) {
	p.ConfigMutex.Lock()
	defer p.ConfigMutex.Unlock()
	return p.Config, p.RedisClient
}

func sendMsg(conf RedisPubPluginConfig, client *redis.Client, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if conf.UseRedisStreams {
		ret := client.XAdd(ctx, &redis.XAddArgs{
			Stream: conf.RedisKey,
			Values: []interface{}{"recinfo", data},
		})
		newID, err := ret.Result()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("stream entry %s", newID), nil
	} else {
		ret := client.Publish(ctx, conf.RedisKey, data)
		receivers, err := ret.Result()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d receivers", receivers), nil
	}
}

func (p *PluginRedisPub) enabled() bool {
	conf, client := p.current()
	return client != nil && conf.Enable
}

func (p *PluginRedisPub) publish(session *interfaces.RecordSession, what string, msgData []byte) error {
	conf, client := p.current()
	if client == nil || !conf.Enable {
		return nil
	}
	ret, err := sendMsg(conf, client, msgData)
	if err != nil {
		return fmt.Errorf("redis publish %s to %s failed: %w", what, conf.RedisKey, err)
	}
	p.GetLogger(session).Infof("Sent %s, %s", what, ret)
	return nil
}

func (p *PluginRedisPub) LiveStart(session *interfaces.RecordSession) error {
	if !p.enabled() {
		return nil
	}
	msgData, err := base.MakeLiveStartMsg(session)
	if err != nil {
		p.GetLogger(session).Warnf("Failed to serialize live start msg, err: %s", err)
		return nil
	}
	return p.publish(session, "live started", msgData)
}

func (p *PluginRedisPub) DownloadStart(session *interfaces.RecordSession) error {
	return nil
}

func (p *PluginRedisPub) LiveEnd(session *interfaces.RecordSession) error {
	if !p.enabled() {
		return nil
	}
	msgData, err := base.MakeLiveEndMsg(session)
	if err != nil {
		p.GetLogger(session).Warnf("Failed to serialize live end msg, err: %s", err)
		return nil
	}
	return p.publish(session, "live ended", msgData)
}

func NewPlugin() *PluginRedisPub {
	ret := &PluginRedisPub{
		PluginBase: &base.PluginBase{
			Name: "redispub",
		},
	}
	ret.Plugin = ret
	return ret
}
