package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/lunchwheel/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init runs, and every
// helper below is a no-op in that case so packages can log from tests.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps debug output off stderr. Set it while the TUI owns the terminal.
	Quiet bool
}

// Path is the rotating log file for a config directory
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init points the global logger at a rotating file under ConfigDir. Debug
// lowers the level and mirrors entries to stderr unless Quiet is set.
func Init(cfg Config) error {
	file := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
		Compress:   true,
	}
	if cfg.Debug && !cfg.Quiet {
		w = io.MultiWriter(os.Stderr, w)
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          constants.AppName,
		Level:           log.InfoLevel,
	}
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	Logger = log.NewWithOptions(w, opts)
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
