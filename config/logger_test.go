package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
)

func TestLoggingPrepare_FileLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "test.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
	}
	defer debug.SetCrashOutput(nil, debug.CrashOptions{})

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("hidden")
	log.Info("visible")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "visible") || strings.Contains(string(data), "hidden") {
		t.Errorf("unexpected log content: %s", data)
	}
}

func TestLoggingPrepare_ReportForcesDebug(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(dir, "test.log")},
	}
	defer debug.SetCrashOutput(nil, debug.CrashOptions{})

	rpt := &Report{entries: make(map[string]entry)}
	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("details")
	_ = log.Sync()

	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("log file must be stored in report")
	}
	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	if err != nil || !strings.Contains(string(data), "details") {
		t.Errorf("expected debug output in log file, got %q, %v", data, err)
	}
}

func TestLoggingPrepare_Disabled(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(-1) {
		t.Error("disabled logger must not accept debug entries")
	}
}
