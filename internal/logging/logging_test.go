package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lizibai0319-sys/GUI-BaseMA120001/internal/config"
)

func TestSetup_LevelAndFormat(t *testing.T) {
	cases := []struct {
		cfg       config.LogConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{config.LogConfig{Level: "debug", Format: "json"}, logrus.DebugLevel, true},
		{config.LogConfig{Level: "warn", Format: "text"}, logrus.WarnLevel, false},
		{config.LogConfig{Level: "loud"}, logrus.InfoLevel, false},
	}
	for _, c := range cases {
		log, closer := Setup(c.cfg)
		if err := closer.Close(); err != nil {
			t.Fatalf("stdout closer: %v", err)
		}
		if log.GetLevel() != c.wantLevel {
			t.Fatalf("%+v: level %s want %s", c.cfg, log.GetLevel(), c.wantLevel)
		}
		_, isJSON := log.Formatter.(*logrus.JSONFormatter)
		if isJSON != c.wantJSON {
			t.Fatalf("%+v: json formatter=%v", c.cfg, isJSON)
		}
	}
}

func TestSetup_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectroview.log")
	log, closer := Setup(config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	log.WithField("component", "test").Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	if _, err := log.Out.(*os.File).Write([]byte("x")); err == nil {
		t.Fatalf("log file still open after close")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o022 != 0 {
		t.Fatalf("log file is group or world writable: %v", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) || !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("log file content %q", data)
	}
}

func TestSetup_UnwritableFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.log")
	log, closer := Setup(config.LogConfig{Output: "file", FilePath: path})
	if log.Out != os.Stdout {
		t.Fatalf("expected stdout fallback")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("fallback closer: %v", err)
	}
	if _, err := os.Stdout.Stat(); err != nil {
		t.Fatalf("closing the fallback closed stdout: %v", err)
	}
}
