package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := parseLogLevel(tt.input); result != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	if config != DefaultConfig() {
		t.Errorf("LoadConfig(missing) = %+v, want defaults %+v", config, DefaultConfig())
	}
}

func TestLoadConfigPartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	yamlContent := `logging:
  level: DEBUG
  file_enabled: true
  file_path: loot.log
  file_max_size_mb: 20
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if !config.FileEnabled || config.FilePath != "loot.log" {
		t.Errorf("file settings = %v %q, want true loot.log", config.FileEnabled, config.FilePath)
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want 20", config.FileMaxSizeMB)
	}
	if !config.ConsoleEnabled {
		t.Error("ConsoleEnabled lost its default")
	}
	if config.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", config.FileMaxBackups)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	if err := os.WriteFile(path, []byte("logging: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_CONSOLE_ENABLED", "false")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", config.Level)
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want json", config.ConsoleFormat)
	}
	if config.ConsoleEnabled {
		t.Error("ConsoleEnabled = true, want false")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want /custom/path.log", config.FilePath)
	}
}

func TestInitializeFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loot.log")
	config := DefaultConfig()
	config.ConsoleEnabled = false
	config.FileEnabled = true
	config.FilePath = path

	if err := Initialize(config); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer func() { logger = nil }()

	Info("coins generated", "cr", 4)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"coins generated"`) {
		t.Errorf("file log missing message: %s", data)
	}
}

func TestInitializeFileWithoutPath(t *testing.T) {
	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = ""

	if err := Initialize(config); err == nil {
		t.Error("expected an error when file logging has no path")
	}
}

func TestTextOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "text", "INFO")
	defer func() { logger = nil }()

	Info("Test message", "key", "value")
	Debug("This should not appear")

	output := buf.String()
	if !strings.Contains(output, "Test message") || !strings.Contains(output, "key=value") {
		t.Errorf("Output missing INFO message: %s", output)
	}
	if strings.Contains(output, "This should not appear") {
		t.Errorf("Output contains DEBUG message when level is INFO: %s", output)
	}
}

func TestAlwaysBypassesLogLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "text", "ERROR")
	defer func() { logger = nil }()

	Info("Info message")
	Warning("Warning")
	Error("Error message")
	Always("Always message")

	output := buf.String()
	if strings.Contains(output, "Info message") || strings.Contains(output, "Warning") {
		t.Errorf("messages below ERROR leaked: %s", output)
	}
	if !strings.Contains(output, "Error message") {
		t.Error("ERROR message missing from output")
	}
	if !strings.Contains(output, "level=ALWAYS") {
		t.Errorf("ALWAYS level not formatted correctly: %s", output)
	}
}

func TestFormattedLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "text", "DEBUG")
	defer func() { logger = nil }()

	Debugf("Debug: %d + %d = %d", 1, 2, 3)
	Infof("Info: %s", "test")
	Warningf("Warning: %.2f%%", 99.95)
	Errorf("Error: %v", "failed")
	Alwaysf("Always: %s %d", "count", 5)

	output := buf.String()
	for _, want := range []string{"Debug: 1 + 2 = 3", "Info: test", "Warning: 99.95%", "Error: failed", "Always: count 5"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewJSONHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger = slog.New(newMultiHandler(handler1, handler2))
	defer func() { logger = nil }()

	Info("info only", "field", "value")
	Warning("both")

	if !strings.Contains(buf1.String(), "field=value") || !strings.Contains(buf1.String(), "both") {
		t.Errorf("first handler output = %s", buf1.String())
	}
	if strings.Contains(buf2.String(), "info only") {
		t.Error("second handler received a record below its level")
	}
	if !strings.Contains(buf2.String(), `"msg":"both"`) {
		t.Error("second handler missing warning")
	}
}

func TestFromContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "json", "INFO")
	defer func() { logger = nil }()

	ctx := WithRunID(context.Background(), "run-123")
	FromContext(ctx).Info("loot generated")

	if !strings.Contains(buf.String(), `"run_id":"run-123"`) {
		t.Errorf("run id missing: %s", buf.String())
	}
}

func TestEnsureRunID(t *testing.T) {
	ctx := EnsureRunID(context.Background())
	id, ok := RunIDFromContext(ctx)
	if !ok || len(id) != 36 {
		t.Fatalf("EnsureRunID produced %q, %v", id, ok)
	}

	if again := EnsureRunID(ctx); again != ctx {
		t.Error("EnsureRunID replaced an existing run id")
	}
}

func TestNilLogger(t *testing.T) {
	logger = nil

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logging with nil logger caused panic: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
	Always("always")
	With("k", "v").Info("discarded")
	FromContext(context.Background()).Warn("discarded")
}
