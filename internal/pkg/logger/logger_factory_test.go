//go:build unit
// +build unit

package logger

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func rotatedFileSettings(t *testing.T, level string) *config.LoggerSettings {
	return &config.LoggerSettings{
		LogLevel:   level,
		LogType:    config.LogTypeFile,
		FilePath:   filepath.Join(t.TempDir(), "rsa-vault.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}
}

func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var records []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record), "line %q", scanner.Text())
		records = append(records, record)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestNewLogger_SelectsImplementation(t *testing.T) {
	console, err := newLogger(&config.LoggerSettings{LogLevel: config.LogLevelDebug, LogType: config.LogTypeConsole})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleLogger{}, console)

	file, err := newLogger(rotatedFileSettings(t, config.LogLevelInfo))
	require.NoError(t, err)
	assert.IsType(t, &FileLogger{}, file)
}

func TestNewLogger_RejectsSettings(t *testing.T) {
	noRotation := rotatedFileSettings(t, config.LogLevelInfo)
	noRotation.MaxBackups = 0

	tests := []struct {
		name     string
		settings *config.LoggerSettings
		contains string
	}{
		{"unknown level", &config.LoggerSettings{LogLevel: "trace", LogType: config.LogTypeConsole}, "LogLevel"},
		{"unknown type", &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: "syslog"}, "LogType"},
		{"file without backups", noRotation, "max backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := newLogger(tt.settings)
			require.Error(t, err)
			assert.Nil(t, logger)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// Key generation and cipher messages go to the file as one JSON record per line.
func TestFileLogger_WritesJSONRecords(t *testing.T) {
	settings := rotatedFileSettings(t, config.LogLevelWarning)
	logger, err := newLogger(settings)
	require.NoError(t, err)

	logger.Info("generated key pair ", "abc-123")
	logger.Warn("skipped malformed line ", 3)
	logger.Error("decrypt failed: ", "block too large")

	records := readJSONLines(t, settings.FilePath)
	require.Len(t, records, 2)
	assert.Equal(t, "WARN", records[0]["level"])
	assert.Equal(t, "skipped malformed line 3", records[0]["msg"])
	assert.Equal(t, "ERROR", records[1]["level"])
	assert.Equal(t, "decrypt failed: block too large", records[1]["msg"])
}

func TestFileLogger_CriticalKeepsOnlyErrors(t *testing.T) {
	settings := rotatedFileSettings(t, config.LogLevelCritical)
	logger, err := newLogger(settings)
	require.NoError(t, err)

	logger.Warn("dropped")
	logger.Error("kept")

	records := readJSONLines(t, settings.FilePath)
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0]["msg"])
}

func TestInitLogger_FirstSettingsWin(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	logger, err := GetLogger()
	assert.Nil(t, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call InitLogger first")

	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole}))
	first, err := GetLogger()
	require.NoError(t, err)

	// A second call, even with file settings, returns the console logger built first.
	require.NoError(t, InitLogger(rotatedFileSettings(t, config.LogLevelDebug)))
	second, err := GetLogger()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.IsType(t, &ConsoleLogger{}, second)
}

func TestInitLogger_InvalidSettingsLeaveNoLogger(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	err := InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile})
	require.Error(t, err)

	logger, getErr := GetLogger()
	assert.Error(t, getErr)
	assert.Nil(t, logger)
}

func TestParseLevel(t *testing.T) {
	levels := map[string]slog.Level{
		config.LogLevelDebug:    slog.LevelDebug,
		config.LogLevelInfo:     slog.LevelInfo,
		config.LogLevelWarning:  slog.LevelWarn,
		config.LogLevelError:    slog.LevelError,
		config.LogLevelCritical: slog.LevelError,
		"":                      slog.LevelInfo,
	}

	for level, expected := range levels {
		assert.Equal(t, expected, parseLevel(level), "level %q", level)
	}
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "", formatArgs())
	assert.Equal(t, "key pair abc-123", formatArgs("key pair ", "abc-123"))
	// fmt.Sprint adds spaces only between operands that are both non-strings.
	assert.Equal(t, "blocks 3 4", formatArgs("blocks ", 3, 4))
}
