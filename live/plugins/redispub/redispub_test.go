package redispub

import (
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"testing"
	"time"
)

func newSession() *interfaces.RecordSession {
	return interfaces.NewRecordSession(interfaces.DownloadRequest{
		URL:             "https://www.youtube.com/watch?v=live123",
		OutputDirectory: "/srv/records",
	})
}

func newRedisPlugin(t *testing.T, srv *miniredis.Miniredis, streams bool) *PluginRedisPub {
	p := NewPlugin()
	p.V = viper.New()
	p.V.Set("Enable", true)
	p.V.Set("ServerAddress", srv.Addr())
	p.V.Set("RedisKey", "liverec")
	p.V.Set("UseRedisStreams", streams)
	p.ReloadConfig()
	t.Cleanup(func() {
		if p.RedisClient != nil {
			_ = p.RedisClient.Close()
		}
	})
	return p
}

func TestRedisPubPublish(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	defer srv.Close()

	p := newRedisPlugin(t, srv, false)
	require.True(t, p.enabled())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sub := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer sub.Close()
	pubsub := sub.Subscribe(ctx, "liverec")
	defer pubsub.Close()
	_, err = pubsub.Receive(ctx)
	require.NoError(t, err)

	session := newSession()
	require.NoError(t, p.LiveStart(session))

	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "start", gjson.Get(msg.Payload, "type").String())
	assert.Equal(t, session.ID, gjson.Get(msg.Payload, "session").String())
	assert.Equal(t, "https://www.youtube.com/watch?v=live123", gjson.Get(msg.Payload, "target").String())
}

func TestRedisPubStream(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	defer srv.Close()

	p := newRedisPlugin(t, srv, true)
	session := newSession()
	session.OutputPath = "/srv/records/Late night stream.mp4"
	require.NoError(t, p.LiveStart(session))
	require.NoError(t, p.LiveEnd(session))

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	entries, err := client.XRange(context.Background(), "liverec", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	start, ok := entries[0].Values["recinfo"].(string)
	require.True(t, ok)
	assert.Equal(t, "start", gjson.Get(start, "type").String())

	end, ok := entries[1].Values["recinfo"].(string)
	require.True(t, ok)
	assert.Equal(t, "end", gjson.Get(end, "type").String())
	assert.True(t, gjson.Get(end, "success").Bool())
	assert.Equal(t, "/srv/records/Late night stream.mp4", gjson.Get(end, "output_path").String())
}

func TestRedisPubServerDown(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	p := newRedisPlugin(t, srv, false)
	srv.Close()

	err = p.LiveStart(newSession())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis publish live started to liverec failed")
}

func TestRedisPubReloadDisables(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	defer srv.Close()

	p := newRedisPlugin(t, srv, true)
	require.True(t, p.enabled())

	p.V = viper.New()
	p.V.Set("Enable", false)
	p.ReloadConfig()
	assert.False(t, p.enabled())
	assert.Nil(t, p.RedisClient)

	require.NoError(t, p.LiveStart(newSession()))
	assert.False(t, srv.Exists("liverec"))
}
