package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/influencerdeck/influencerdeck/pkg/config"
	"github.com/influencerdeck/influencerdeck/pkg/pipeline"
)

func TestGenerateCommand(t *testing.T) {
	out := captureStdout(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "alice", "bob")
	deck := filepath.Join(dir, "out", "report.pptx")

	logs, err := runCLI(t, "generate", in, "-o", deck)
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, logs)
	}

	if info, err := os.Stat(deck); err != nil || info.Size() == 0 {
		t.Fatalf("deck not written: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote 2 slides") {
		t.Errorf("stdout = %q, want slide summary", out.String())
	}

	logData, err := os.ReadFile(filepath.Join(dir, "out", pipeline.DefaultLogFile))
	if err != nil {
		t.Fatalf("run log not written: %v", err)
	}
	if !strings.Contains(string(logData), "run=") || !strings.Contains(string(logData), "wrote presentation") {
		t.Errorf("run log = %q, want run id and persist line", logData)
	}
	if !strings.Contains(logs.String(), "wrote presentation") {
		t.Errorf("stderr log = %q, want persist line", logs.String())
	}
}

func TestGenerateNoLogFile(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "alice")

	if _, err := runCLI(t, "generate", in, "-o", filepath.Join(dir, "report.pptx"), "--no-log-file"); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, pipeline.DefaultLogFile)); !os.IsNotExist(err) {
		t.Errorf("log file written despite --no-log-file (stat err = %v)", err)
	}
}

func TestGenerateWithConfig(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "alice")
	cfgPath := filepath.Join(dir, "deck.toml")
	cfg := `title = "Creators"
log_file = "custom.log"
font_size = 10
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "generate", in, "-o", filepath.Join(dir, "report.pptx"), "--config", cfgPath); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom.log")); err != nil {
		t.Errorf("config log_file not used: %v", err)
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	captureStdout(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "alice", "")
	deck := filepath.Join(dir, "report.pptx")

	_, err := runCLI(t, "generate", in, "-o", deck, "--no-log-file")
	if err == nil {
		t.Fatal("generate succeeded with an empty twitter_name")
	}
	if !strings.Contains(err.Error(), "record 2") {
		t.Errorf("error = %v, want record index", err)
	}
	if _, err := os.Stat(deck); !os.IsNotExist(err) {
		t.Errorf("deck written despite invalid input")
	}
}

func TestGenerateRequiresOutput(t *testing.T) {
	in := writeCSV(t, t.TempDir(), "alice")
	if _, err := runCLI(t, "generate", in); err == nil {
		t.Error("generate without -o succeeded")
	}
}

func TestLogFilePath(t *testing.T) {
	tests := []struct {
		name string
		opts generateOpts
		cfg  *config.Config
		want string
	}{
		{"default", generateOpts{output: "out/r.pptx"}, nil, filepath.Join("out", pipeline.DefaultLogFile)},
		{"disabled", generateOpts{output: "out/r.pptx", noLogFile: true}, nil, ""},
		{"flag wins", generateOpts{output: "out/r.pptx", logFile: "a.log"}, &config.Config{LogFile: "b.log"}, "a.log"},
		{"config relative", generateOpts{output: "out/r.pptx"}, &config.Config{LogFile: "b.log"}, filepath.Join("out", "b.log")},
		{"config absolute", generateOpts{output: "out/r.pptx"}, &config.Config{LogFile: "/var/log/b.log"}, "/var/log/b.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logFilePath(tt.opts, tt.cfg); got != tt.want {
				t.Errorf("logFilePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
