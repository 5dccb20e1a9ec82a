package config

import (
	"errors"
	"flag"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	"github.com/mitchellh/mapstructure"
	"github.com/rclone/rclone/fs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"log"
	"os"
	"reflect"
	"strings"
	"sync"
)

// Config is replaced as a whole on every reload, never mutated in place.
// Code that may run during a reload reads it through GetConfig.
var Config *MainConfig
var configMu sync.RWMutex

// GetConfig returns the current configuration snapshot.
func GetConfig() *MainConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return Config
}

type SiteRuleEntry struct {
	Pattern       string
	Format        string
	LiveFromStart *bool
}

type MainConfig struct {
	Url             string
	DownloadDir     string
	Browser         string
	CookieFile      string
	Resume          bool
	OutputTemplate  string
	Format          string
	LiveFromStart   bool
	WaitForVideo    string
	Retries         string
	FragmentRetries string
	ExtraArgs       []string

	Provider            string
	YtdlpPath           string
	Probe               bool
	ProgressIntervalSec int
	SiteRules           []SiteRuleEntry
	UploadDir           string

	LogFile        string
	LogFileSize    int
	LogLevel       string
	FileLogLevel   string
	FluentLogLevel string
	RLogLevel      string
	PluginConfDir  string

	ExtraConfig map[string]interface{}
}

var ErrNoUrl = errors.New("no stream url configured")
var ErrConflictingCredentials = errors.New("Browser and CookieFile are mutually exclusive")

var v *viper.Viper
var reloadMu sync.Mutex

func setDefaults(v *viper.Viper) {
	v.SetDefault("Url", "")
	v.SetDefault("DownloadDir", "data")
	v.SetDefault("Browser", "")
	v.SetDefault("CookieFile", "")
	v.SetDefault("Resume", true)
	v.SetDefault("OutputTemplate", "%(title)s.%(ext)s")
	v.SetDefault("Format", "")
	v.SetDefault("LiveFromStart", false)
	v.SetDefault("WaitForVideo", "")
	v.SetDefault("Retries", "")
	v.SetDefault("FragmentRetries", "")
	v.SetDefault("Provider", "ytdlp")
	v.SetDefault("YtdlpPath", "")
	v.SetDefault("Probe", false)
	v.SetDefault("ProgressIntervalSec", 30)
	v.SetDefault("UploadDir", "")
	v.SetDefault("LogFile", "")
	v.SetDefault("LogFileSize", 100)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("FileLogLevel", "debug")
	v.SetDefault("FluentLogLevel", "disable")
	v.SetDefault("RLogLevel", "info")
	v.SetDefault("PluginConfDir", "pluginconf/")
}

func InitConfig(confPath string) error {
	log.Print("Init config!")
	if err := initConfig(confPath); err != nil {
		return err
	}
	log.Print("Load config!")
	return ReloadConfig()
}

func initConfig(confPath string) error {
	v = viper.NewWithOptions(viper.KeyDelimiter("::::"))
	setDefaults(v)
	v.SetEnvPrefix("LIVEREC")
	v.AutomaticEnv()

	if confPath == "" {
		return nil
	}
	if _, err := os.Stat(confPath); err != nil {
		if os.IsNotExist(err) {
			log.Printf("config file %s not found, using defaults and environment", confPath)
			return nil
		}
		return err
	}
	v.SetConfigFile(confPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config file error: %w", err)
	}
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		if err := ReloadConfig(); err != nil {
			logrus.WithError(err).Warnf("Failed to reload config %s", in.Name)
		}
	})
	return nil
}

// ReloadConfig decodes the current viper state into Config and re-applies the log levels.
func ReloadConfig() error {
	reloadMu.Lock()
	defer reloadMu.Unlock()
	config, err := decodeConfig(v)
	if err != nil {
		return err
	}
	configMu.Lock()
	Config = config
	configMu.Unlock()
	UpdateLogLevel()
	return nil
}

func decodeConfig(v *viper.Viper) (*MainConfig, error) {
	config := &MainConfig{}
	err := v.Unmarshal(config, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			func(inType reflect.Type, outType reflect.Type, input interface{}) (interface{}, error) {
				if inType.Kind() == reflect.Map && outType == reflect.TypeOf(MainConfig{}) {
					inputMap, ok := input.(map[string]interface{})
					if !ok {
						return input, nil
					}
					fieldsMap := make(map[string]reflect.StructField, outType.NumField())
					for i := 0; i < outType.NumField(); i++ {
						fieldsMap[strings.ToLower(outType.Field(i).Name)] = outType.Field(i)
					}
					extraConfig := make(map[string]interface{}, 5)
					for key := range inputMap {
						if _, ok := fieldsMap[strings.ToLower(key)]; !ok {
							extraConfig[key] = inputMap[key]
						}
					}
					inputMap["ExtraConfig"] = extraConfig
				}
				return input, nil
			},
			c.DecodeHook)
	})
	if err != nil {
		return nil, fmt.Errorf("struct config error: %w", err)
	}
	return config, nil
}

// BuildRequest turns the loaded configuration into the request handed to the recorder.
func (c *MainConfig) BuildRequest() (interfaces.DownloadRequest, error) {
	req := interfaces.DownloadRequest{
		URL:             strings.TrimSpace(c.Url),
		OutputDirectory: c.DownloadDir,
		Credentials:     interfaces.NoCredentials(),
		Resume:          c.Resume,
	}
	if req.URL == "" {
		return req, ErrNoUrl
	}
	if c.Browser != "" && c.CookieFile != "" {
		return req, ErrConflictingCredentials
	}
	if c.Browser != "" {
		req.Credentials = interfaces.BrowserCredentials(c.Browser)
	} else if c.CookieFile != "" {
		req.Credentials = interfaces.CookieFileCredentials(c.CookieFile)
	}
	return req, nil
}

func LevelStrParse(levelStr string) (level logrus.Level) {
	level = logrus.InfoLevel
	if levelStr == "trace" {
		level = logrus.TraceLevel
	} else if levelStr == "debug" {
		level = logrus.DebugLevel
	} else if levelStr == "info" {
		level = logrus.InfoLevel
	} else if levelStr == "warn" {
		level = logrus.WarnLevel
	} else if levelStr == "error" {
		level = logrus.ErrorLevel
	}
	return level
}

func UpdateLogLevel() {
	conf := GetConfig()
	if conf == nil {
		return
	}
	fs.Config.LogLevel = fs.LogLevelInfo
	if conf.RLogLevel == "debug" {
		fs.Config.LogLevel = fs.LogLevelDebug
	} else if conf.RLogLevel == "info" {
		fs.Config.LogLevel = fs.LogLevelInfo
	} else if conf.RLogLevel == "warn" {
		fs.Config.LogLevel = fs.LogLevelWarning
	} else if conf.RLogLevel == "error" {
		fs.Config.LogLevel = fs.LogLevelError
	}

	applyHookLevel(ConsoleHook, conf.LogLevel, "console")
	applyHookLevel(FileHook, conf.FileLogLevel, "file")
	applyHookLevel(GoogleHook, conf.FluentLogLevel, "fluentd")
}

func applyHookLevel(hook *LogWrapHook, levelStr string, name string) {
	if hook == nil {
		return
	}
	if levelStr == "disable" {
		hook.SetLevel(false, logrus.InfoLevel)
		return
	}
	level := LevelStrParse(levelStr)
	hook.SetLevel(true, level)
	logrus.Debugf("Set logrus %s level to %s", name, level)
}

// PrepareConfig parses the command line (without the program name) and loads the config it points to.
func PrepareConfig(args []string) error {
	flags := flag.NewFlagSet("live_record", flag.ContinueOnError)
	confPath := flags.String("config", "config.json", "config.json location")
	if err := flags.Parse(args); err != nil {
		return err
	}
	return InitConfig(*confPath)
}
