package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Parser.DefaultRelease != "2.1" {
		t.Errorf("DefaultRelease = %q, want 2.1", cfg.Parser.DefaultRelease)
	}
	if !cfg.Parser.RenameShortTags {
		t.Error("Expected short tags renaming to be on by default")
	}
	if cfg.Output.Format != OutputFmtYAML {
		t.Errorf("Format = %q, want yaml", cfg.Output.Format)
	}
	// name template must survive load unexpanded
	if !strings.Contains(cfg.Output.NameTemplate, "{{") {
		t.Errorf("NameTemplate was expanded on load: %q", cfg.Output.NameTemplate)
	}
	if !strings.HasSuffix(cfg.Reporting.Destination, "onixdump-report.zip") {
		t.Errorf("Reporting destination = %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
parser:
  default_release: "3.0"
  rename_short_tags: false
  strict_main_description: true
  max_identifiers: 4
output:
  format: text
  name_template: "{{ .ID }}"
  transliterate: true
logging:
  console:
    level: debug
  file:
    level: normal
    destination: `+filepath.Join(t.TempDir(), "test.log")+`
    mode: append
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Parser.DefaultRelease != "3.0" || cfg.Parser.RenameShortTags || !cfg.Parser.StrictMainDescription {
		t.Errorf("Parser section not applied: %+v", cfg.Parser)
	}
	if cfg.Parser.MaxIdentifiers != 4 {
		t.Errorf("MaxIdentifiers = %d, want 4", cfg.Parser.MaxIdentifiers)
	}
	if cfg.Output.Format != OutputFmtText || cfg.Output.NameTemplate != "{{ .ID }}" || !cfg.Output.Transliterate {
		t.Errorf("Output section not applied: %+v", cfg.Output)
	}
	// untouched values keep defaults
	if !cfg.Output.ListUnsupported {
		t.Error("Expected ListUnsupported default to be kept")
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File logger mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nparser:\n  default_release: \"2.1\"\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"wrong version", "version: 2\n"},
		{"wrong format", "version: 1\noutput:\n  format: xml\n"},
		{"negative limit", "version: 1\nparser:\n  max_identifiers: -1\n"},
		{"empty release", "version: 1\nparser:\n  default_release: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Output.Format = OutputFmtText

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Output.Format != OutputFmtText || cfg2.Output.NameTemplate != cfg.Output.NameTemplate {
		t.Errorf("Output mismatch after dump/load: %+v", cfg2.Output)
	}
}

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFmt
		ext     string
		wantErr bool
	}{
		{"yaml", OutputFmtYAML, ".yaml", false},
		{"YAML", OutputFmtYAML, ".yaml", false},
		{"text", OutputFmtText, ".txt", false},
		{"xml", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFmt(%q) error = %v", tt.input, err)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want || got.Ext() != tt.ext {
				t.Errorf("ParseOutputFmt(%q) = %q (%s)", tt.input, got, got.Ext())
			}
		})
	}
}

func TestOutputFmt_ExtPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unsupported format")
		}
	}()
	_ = OutputFmt("pdf").Ext()
}

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName("a" + string(os.PathSeparator) + "b"); got != "ab" {
		t.Errorf("CleanFileName() = %q, want ab", got)
	}
	if got := CleanFileName(string(os.PathSeparator)); got != "_bad_file_name_" {
		t.Errorf("CleanFileName() = %q, want placeholder", got)
	}
}
