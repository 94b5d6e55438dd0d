package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type LoggerConfig struct {
	Level        string      `env:"LEVEL"         envDefault:"info"`   // debug|info|warn|error
	Output       string      `env:"OUTPUT"        envDefault:"stdout"` // stdout|stderr|file[:/path], comma-separated
	FilePath     string      `env:"FILE_PATH"`                         // required if Output includes file
	FileMode     os.FileMode `env:"FILE_MODE"     envDefault:"0644"`
	OTELExporter string      `env:"OTEL_EXPORTER" envDefault:"none"` // none|otlp-http|otlp-grpc
	OTELEndpoint string      `env:"OTEL_ENDPOINT"`

	file    io.Writer
	fileMut sync.Mutex
}

// Writer returns the first configured log writer.
func (c *Config) Writer() io.Writer {
	writers := c.Writers()
	if len(writers) == 0 {
		return os.Stdout
	}
	return writers[0]
}

// Writers resolves LOG_OUTPUT into a deduplicated writer list. Examples:
//
//	stdout
//	stderr
//	file (uses LOG_FILE_PATH)
//	file:/var/log/brewflow.log
//	stdout,file:/tmp/brewflow.log
//
// Unknown tokens are skipped with a warning.
func (c *Config) Writers() []io.Writer {
	outputs := strings.TrimSpace(c.Logger.Output)
	if outputs == "" {
		return []io.Writer{os.Stdout}
	}

	writers := make([]io.Writer, 0, 2)
	seen := make(map[string]struct{})
	add := func(key string, w io.Writer) {
		if w == nil {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		writers = append(writers, w)
	}

	for _, raw := range strings.Split(outputs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		lower := strings.ToLower(raw)
		if path, ok := strings.CutPrefix(raw, "file:"); ok {
			add("file:"+path, c.openFile(path))
			continue
		}
		switch lower {
		case "stdout":
			add("stdout", os.Stdout)
		case "stderr":
			add("stderr", os.Stderr)
		case "file":
			if c.Logger.FilePath == "" {
				slog.Warn("LOG_OUTPUT includes 'file' but LOG_FILE_PATH not set; skipping")
				continue
			}
			add("file:"+c.Logger.FilePath, c.openFile(c.Logger.FilePath))
		default:
			slog.Warn("unknown log output entry", "entry", raw)
		}
	}

	if len(writers) == 0 {
		return []io.Writer{os.Stdout}
	}
	return writers
}

// openFile opens or reuses the single file writer.
func (c *Config) openFile(path string) io.Writer {
	if path == "" {
		return nil
	}
	c.Logger.fileMut.Lock()
	defer c.Logger.fileMut.Unlock()
	if c.Logger.file != nil && c.Logger.FilePath == path {
		return c.Logger.file
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, c.Logger.FileMode)
	if err != nil {
		slog.Warn("cannot open file for log output", "path", path, "error", err)
		return nil
	}
	c.Logger.FilePath = path
	c.Logger.file = f
	return f
}

// Interface compliance helpers for logger.Options.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Logger.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) OTELExporter() string { return c.Logger.OTELExporter }
func (c *Config) OTELEndpoint() string { return c.Logger.OTELEndpoint }
