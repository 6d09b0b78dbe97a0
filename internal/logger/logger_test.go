package logger

import (
	"bytes"
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
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo}, // Default to INFO
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLogLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	if config != DefaultConfig() {
		t.Errorf("LoadConfig(missing) = %+v, want defaults %+v", config, DefaultConfig())
	}
	if config.FilePath != "logs/heroforge.log" {
		t.Errorf("Default FilePath = %q, want %q", config.FilePath, "logs/heroforge.log")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heroforge.yaml")
	yamlContent := `content:
  cache_size: 10
logging:
  level: DEBUG
  console_format: json
  file_enabled: true
  file_path: test.log
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
		t.Errorf("Level = %q, want %q", config.Level, "DEBUG")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q", config.ConsoleFormat, "json")
	}
	// Omitted keys keep their defaults
	if !config.ConsoleEnabled {
		t.Error("ConsoleEnabled = false, want default true")
	}
	if config.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", config.FileMaxBackups)
	}
	if !config.FileEnabled || config.FilePath != "test.log" || config.FileMaxSizeMB != 20 {
		t.Errorf("file settings not loaded: %+v", config)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("logging: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestInitializeWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "heroforge.log")
	config := DefaultConfig()
	config.ConsoleEnabled = false
	config.FileEnabled = true
	config.FilePath = path
	config.FileFormat = "json"

	if err := Initialize(config); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	Info("Pass committed", "character", "kira")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"character":"kira"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
	logger = nil
}

func TestInitializeRejectsEmptyFilePath(t *testing.T) {
	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = ""
	if err := Initialize(config); err == nil {
		t.Error("expected error for file logging without a path")
	}
}

// capture points the package logger at a buffer for one test.
func capture(t *testing.T, format string, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger = slog.New(newHandler(&buf, format, level))
	t.Cleanup(func() { logger = nil })
	return &buf
}

func TestHandlerOutput(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		level   slog.Level
		log     func()
		want    []string
		exclude []string
	}{
		{
			name:   "text",
			format: "text",
			level:  slog.LevelInfo,
			log: func() {
				Info("Pass committed", "character", "kira")
				Debug("Content lookup")
			},
			want:    []string{"Pass committed", "character=kira"},
			exclude: []string{"Content lookup"},
		},
		{
			name:   "json",
			format: "json",
			level:  slog.LevelInfo,
			log:    func() { Info("Pass committed", "character", "kira", "generation", 3) },
			want:   []string{`"msg":"Pass committed"`, `"generation":3`},
		},
		{
			name:   "warn threshold",
			format: "text",
			level:  slog.LevelWarn,
			log: func() {
				Debug("Content lookup")
				Infof("Species loaded: %d", 5)
				Warning("Dropping malformed modifier", "index", 4)
				Errorf("Recalculation failed: %v", "unknown class")
			},
			want:    []string{"Dropping malformed modifier", "index=4", "Recalculation failed: unknown class"},
			exclude: []string{"Content lookup", "Species loaded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.format, tt.level)
			tt.log()
			output := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(output, w) {
					t.Errorf("output missing %q: %s", w, output)
				}
			}
			for _, x := range tt.exclude {
				if strings.Contains(output, x) {
					t.Errorf("output should not contain %q: %s", x, output)
				}
			}
		})
	}
}

func TestMultiHandlerLevels(t *testing.T) {
	var console, file bytes.Buffer
	logger = slog.New(newMultiHandler(
		newHandler(&console, "text", slog.LevelInfo),
		newHandler(&file, "json", slog.LevelError),
	))
	defer func() { logger = nil }()

	Info("Watching for changes", "interval", "2s")
	Error("Recalculation failed", "snapshot", "kira.yaml")

	if !strings.Contains(console.String(), "interval=2s") || !strings.Contains(console.String(), "snapshot=kira.yaml") {
		t.Errorf("console handler missed records: %s", console.String())
	}
	if strings.Contains(file.String(), "Watching") {
		t.Errorf("file handler received a record below its level: %s", file.String())
	}
	if !strings.Contains(file.String(), `"snapshot":"kira.yaml"`) {
		t.Errorf("file handler missed the error record: %s", file.String())
	}
}

func TestNilLogger(t *testing.T) {
	logger = nil
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("logging before Initialize panicked: %v", r)
		}
	}()

	Debug("debug")
	Infof("info %d", 1)
	Warning("warning")
	Errorf("error %s", "x")
}
