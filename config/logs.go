package config

import (
	"fmt"
	"github.com/fzxiao233/Live_Record/utils"
	"github.com/knq/sdhook"
	"github.com/orandin/lumberjackrus"
	"github.com/rclone/rclone/fs"
	"github.com/sirupsen/logrus"
	"io"
	"io/ioutil"
	"os"
	"path"
	"runtime"
	"strconv"
	"sync"
)

type LogWrapHook struct {
	Enabled  bool
	Hook     logrus.Hook
	LogLevel logrus.Level

	mu sync.RWMutex
}

// SetLevel is safe to call while other goroutines are logging.
func (h *LogWrapHook) SetLevel(enabled bool, level logrus.Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Enabled = enabled
	h.LogLevel = level
}

func (h *LogWrapHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *LogWrapHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	skip := !h.Enabled || entry.Level > h.LogLevel
	h.mu.RUnlock()
	if skip {
		return nil
	}
	return h.Hook.Fire(entry)
}

// WriterHook is a hook that writes logs of specified LogLevels to specified Writer
type WriterHook struct {
	Out       io.Writer
	Formatter logrus.Formatter
}

// Fire will be called when some logging function is called with current hook
// It will format logrus entry to string and write it to appropriate writer
func (hook *WriterHook) Fire(entry *logrus.Entry) error {
	serialized, err := hook.Formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to obtain reader, %v\n", err)
		return err
	}
	if _, err = hook.Out.Write(serialized); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write to logrus, %v\n", err)
	}
	return nil
}

func (hook *WriterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

var ConsoleHook *LogWrapHook
var FileHook *LogWrapHook
var GoogleHook *LogWrapHook

func NewFormatter(forceColors bool) *logrus.TextFormatter {
	return &logrus.TextFormatter{
		ForceColors:   forceColors,
		FullTimestamp: true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			_, _, shortfname := utils.RPartition(f.Function, ".")
			return fmt.Sprintf("%s()", shortfname), fmt.Sprintf("%s:%d", filename, f.Line)
		},
	}
}

// Can't be func init as we need the parsed config
func InitLog() {
	logrus.Printf("Init logging!")
	logrus.SetLevel(logrus.TraceLevel)
	logrus.SetReportCaller(true)
	formatter := NewFormatter(true)
	logrus.SetFormatter(formatter)

	ConsoleHook = &LogWrapHook{
		Enabled:  true,
		LogLevel: logrus.InfoLevel,
		Hook: &WriterHook{
			Out:       logrus.StandardLogger().Out,
			Formatter: formatter,
		},
	}
	logrus.AddHook(ConsoleHook)
	logrus.StandardLogger().Out = ioutil.Discard

	conf := GetConfig()
	if conf.LogFile != "" {
		fileHook, err := lumberjackrus.NewHook(
			&lumberjackrus.LogFile{
				Filename:   conf.LogFile,
				MaxSize:    conf.LogFileSize,
				MaxBackups: 1,
				MaxAge:     1,
				Compress:   false,
				LocalTime:  false,
			},
			logrus.TraceLevel,
			&logrus.JSONFormatter{},
			nil,
		)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to initialize the file log hook")
		} else {
			FileHook = &LogWrapHook{
				Enabled:  true,
				Hook:     fileHook,
				LogLevel: logrus.DebugLevel,
			}
			logrus.AddHook(FileHook)
		}
	}

	if conf.FluentLogLevel != "disable" {
		googleHook, err := sdhook.New(
			sdhook.GoogleLoggingAgent(),
			sdhook.LogName("live_record"+strconv.Itoa(os.Getpid())),
			sdhook.Levels(logrus.AllLevels[:logrus.DebugLevel+1]...),
		)
		if err != nil {
			logrus.Warnf("Failed to initialize the sdhook: %v", err)
		} else {
			GoogleHook = &LogWrapHook{
				Enabled:  true,
				Hook:     googleHook,
				LogLevel: logrus.DebugLevel,
			}
			logrus.AddHook(GoogleHook)
		}
	}

	fs.LogPrint = func(level fs.LogLevel, text string) {
		logrus.WithField("src", "rclone").Infof("%-6s: %s", level, text)
	}

	UpdateLogLevel()
}
