package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(isolate(t), "auteur.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		start   log.Level
		fileLvl string
		want    log.Level
	}{
		{"debug from file", LogInfo, "debug", log.DebugLevel},
		{"warn from file", LogInfo, "warn", log.WarnLevel},
		{"verbose wins over file", LogDebug, "error", log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "[log]\nlevel = \""+tt.fileLvl+"\"\n")
			c := New(io.Discard, tt.start)
			c.configPath = path

			if err := c.loadConfig(); err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if got := c.Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
			if c.config().Path != path {
				t.Errorf("config path = %q, want %q", c.config().Path, path)
			}
		})
	}
}

func TestLoadConfigLogsPathAtDebug(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"debug\"\n")
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.configPath = path

	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "loaded config") {
		t.Errorf("debug output = %q, want the loaded config path", buf.String())
	}
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"loud\"\n")
	c := New(io.Discard, LogInfo)
	c.configPath = path

	if err := c.loadConfig(); err == nil {
		t.Fatal("loadConfig accepted an unknown log level")
	}
	if got := c.Logger.GetLevel(); got != LogInfo {
		t.Errorf("level changed to %v on a rejected config", got)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	c := New(io.Discard, LogInfo)
	c.configPath = filepath.Join(dir, "missing.toml")

	if err := c.loadConfig(); err == nil {
		t.Error("loadConfig ignored a missing --config file")
	}
}

func TestVerboseRenderLogs(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)

	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("default config lowered --verbose to %v", got)
	}
	c.Logger.Debug("rendering", "format", "svg")
	if !strings.Contains(buf.String(), "format=svg") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Rendered 3 formats")

	out := buf.String()
	if !strings.Contains(out, "Rendered 3 formats (") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want a duration suffix", out)
	}
}

func TestProgressQuietBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.WarnLevel))
	prog.done("Saved project")

	if buf.Len() != 0 {
		t.Errorf("progress wrote %q at warn level", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, LogInfo)

	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should fall back to log.Default")
	}
}
