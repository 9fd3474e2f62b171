package providers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"dbpd/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeEngine
)

type Logger interface {
	Errorf(logType TypeEnum, format string, args ...interface{})
	Warnf(logType TypeEnum, format string, args ...interface{})
	Debugf(logType TypeEnum, format string, args ...interface{})
	Infof(logType TypeEnum, format string, args ...interface{})
	Fatalf(logType TypeEnum, format string, args ...interface{})
	Close() error
}

var channelFiles = map[TypeEnum]string{
	TypeApp:    "app.log",
	TypeGet:    "get.log",
	TypePost:   "post.log",
	TypeEngine: "engine.log",
}

type LogProvider struct {
	mu      sync.Mutex
	files   map[TypeEnum]*os.File
	loggers map[TypeEnum]zerolog.Logger
}

// NewLogProvider opens one log file per channel in conf.Logger.Dir. The
// directory must already exist; a missing or unusable directory is an error.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	info, err := os.Stat(conf.Logger.Dir)
	if err != nil {
		return nil, fmt.Errorf("log directory %q: %w", conf.Logger.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log path %q is not a directory", conf.Logger.Dir)
	}

	lp := &LogProvider{
		files:   make(map[TypeEnum]*os.File, len(channelFiles)),
		loggers: make(map[TypeEnum]zerolog.Logger, len(channelFiles)),
	}

	for logType, name := range channelFiles {
		f, err := os.OpenFile(
			filepath.Join(conf.Logger.Dir, name),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			os.FileMode(conf.Logger.Mode),
		)
		if err != nil {
			_ = lp.Close()
			return nil, fmt.Errorf("open log file %q: %w", name, err)
		}

		var w io.Writer = f
		if conf.Debug {
			w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: os.Stdout})
		}

		lp.files[logType] = f
		lp.loggers[logType] = zerolog.New(w).Level(level).With().Timestamp().Logger()
	}

	return lp, nil
}

func (lp *LogProvider) get(logType TypeEnum) zerolog.Logger {
	if l, ok := lp.loggers[logType]; ok {
		return l
	}
	return lp.loggers[TypeApp]
}

func (lp *LogProvider) Errorf(logType TypeEnum, format string, args ...interface{}) {
	l := lp.get(logType)
	l.Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(logType TypeEnum, format string, args ...interface{}) {
	l := lp.get(logType)
	l.Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(logType TypeEnum, format string, args ...interface{}) {
	l := lp.get(logType)
	l.Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(logType TypeEnum, format string, args ...interface{}) {
	l := lp.get(logType)
	l.Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(logType TypeEnum, format string, args ...interface{}) {
	l := lp.get(logType)
	l.Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	var firstErr error
	for _, f := range lp.files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	lp.files = map[TypeEnum]*os.File{}
	return firstErr
}

// GetLogTypeByRequestType routes request logging by HTTP method. Mutating
// methods land in the post channel, everything else in the get channel.
func GetLogTypeByRequestType(requestType string) TypeEnum {
	if requestType == http.MethodPost {
		return TypePost
	}
	return TypeGet
}
