package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	tpptx "github.com/tsawler/tabula/pptx"

	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/observability"
	"github.com/influencerdeck/influencerdeck/pkg/record"
)

// writeInput writes a CSV with every column and one row per name. Each row
// points its profile image at image(name).
func writeInput(t *testing.T, dir string, image func(name string) string, names ...string) string {
	t.Helper()
	header := []string{record.ColProfileImage, record.ColLocation, record.ColTimeZone, record.ColCreatedAt}
	header = append(header, record.RequiredColumns...)
	header = append(header, record.AgeColumns[:]...)
	header = append(header, "music", "sports", "tv")

	var sb strings.Builder
	sb.WriteString(strings.Join(header, ",") + "\n")
	for _, name := range names {
		row := make([]string, len(header))
		for i, col := range header {
			switch col {
			case record.ColName:
				row[i] = name
			case record.ColProfileImage:
				row[i] = image(name)
			case record.ColLocation:
				row[i] = "Berlin"
			case record.ColTimeZone:
				row[i] = "CET"
			case record.ColCreatedAt:
				row[i] = "2015-03-01"
			default:
				row[i] = "5"
			}
		}
		sb.WriteString(strings.Join(row, ",") + "\n")
	}

	path := filepath.Join(dir, "influencers.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// imageServer serves a PNG at /<name>.png for names in ok and 404 otherwise.
func imageServer(t *testing.T, ok ...string) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))); err != nil {
		t.Fatal(err)
	}
	allowed := make(map[string]bool)
	for _, n := range ok {
		allowed["/"+n+".png"] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowed[r.URL.Path] {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

// slideHandles reads the deck at path and returns, per slide, the handle
// found next to the "Handle" cell.
func slideHandles(t *testing.T, path string) []string {
	t.Helper()
	r, err := tpptx.Open(path)
	if err != nil {
		t.Fatalf("read back %s: %v", path, err)
	}
	defer r.Close()

	var out []string
	for i := 0; i < r.SlideCount(); i++ {
		s, err := r.Slide(i)
		if err != nil {
			t.Fatalf("Slide(%d): %v", i, err)
		}
		handle := ""
		for _, tbl := range s.Tables {
			for _, row := range tbl.Rows {
				if len(row) >= 2 && row[0].Text == "Handle" {
					handle = row[1].Text
				}
			}
		}
		out = append(out, handle)
	}
	return out
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	srv := imageServer(t, "alice", "carol")
	in := writeInput(t, dir, func(n string) string { return srv.URL + "/" + n + ".png" },
		"alice", "bob", "carol")
	out := filepath.Join(dir, "out", "report.pptx")

	res, err := NewRunner(nil, nil).Execute(context.Background(), Options{
		Input:   in,
		Output:  out,
		NoCache: true,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.RunID == "" || res.Document.RunID != res.RunID {
		t.Errorf("run id = %q, document run id = %q", res.RunID, res.Document.RunID)
	}
	want := Stats{Records: 3, Slides: 3, ImagesEmbedded: 2, ImagesFailed: 1}
	got := res.Stats
	got.Bytes, got.LoadTime, got.BuildTime, got.PersistTime = 0, 0, 0, 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.Bytes <= 0 {
		t.Errorf("Stats.Bytes = %d", res.Stats.Bytes)
	}
	if len(res.Failures) != 1 || res.Failures[0].Name != "bob" || res.Failures[0].Record != 2 {
		t.Errorf("Failures = %+v, want bob at record 2", res.Failures)
	}

	for i, s := range res.Document.Slides {
		wantPics := 1
		if i == 1 {
			wantPics = 0
		}
		if n := len(s.Pictures()); n != wantPics {
			t.Errorf("slide %d pictures = %d, want %d", i+1, n, wantPics)
		}
		if n := len(s.Charts()); n != 4 {
			t.Errorf("slide %d charts = %d, want 4", i+1, n)
		}
	}

	if diff := cmp.Diff([]string{"alice", "bob", "carol"}, slideHandles(t, out)); diff != "" {
		t.Errorf("slide order mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteFieldError(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, func(string) string { return "" }, "alice", "")
	out := filepath.Join(dir, "report.pptx")

	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{Input: in, Output: out})
	var fe *errors.FieldError
	if !stderrors.As(err, &fe) {
		t.Fatalf("Execute() error = %v, want *errors.FieldError", err)
	}
	if fe.Record != 2 || fe.Field != record.ColName {
		t.Errorf("FieldError = record %d field %q, want record 2 field %q", fe.Record, fe.Field, record.ColName)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite invalid input (stat err = %v)", err)
	}
}

func TestExecuteNoRecords(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, func(string) string { return "" })

	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{
		Input:  in,
		Output: filepath.Join(dir, "report.pptx"),
	})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Execute() error = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, func(string) string { return "" }, "alice")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil).Execute(ctx, Options{Input: in, Output: filepath.Join(dir, "r.pptx")})
	if err == nil || !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("Execute() error = %v, want context canceled", err)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, func(string) string { return "" }, "alice", "bob")
	out := filepath.Join(dir, "report.pptx")

	if err := Convert(context.Background(), in, out); err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, slideHandles(t, out)); diff != "" {
		t.Errorf("slides mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(dir, DefaultLogFile))
	if err != nil {
		t.Fatalf("run log: %v", err)
	}
	for _, want := range []string{`msg="loaded records"`, `msg="wrote presentation"`, "records=2", "run="} {
		if !strings.Contains(string(data), want) {
			t.Errorf("run log missing %q:\n%s", want, data)
		}
	}
}

func TestConvertLogsFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, func(string) string { return "" })
	out := filepath.Join(dir, "out", "report.pptx")

	if err := Convert(context.Background(), in, out); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Convert() error = %v, want INVALID_INPUT", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out", DefaultLogFile))
	if err != nil {
		t.Fatalf("run log: %v", err)
	}
	if !strings.Contains(string(data), "level=error") || !strings.Contains(string(data), "no records") {
		t.Errorf("run log does not record the failure:\n%s", data)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written after failure: %v", err)
	}
}

type countingHooks struct {
	observability.NoopGenerationHooks
	mu      sync.Mutex
	records []string
	loaded  int
	bytes   int
}

func (h *countingHooks) OnLoadComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaded = n
}

func (h *countingHooks) OnRecordComplete(_ context.Context, _ int, name string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, name)
}

func (h *countingHooks) OnPersistComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bytes = n
}

func TestExecuteHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetGenerationHooks(hooks)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	in := writeInput(t, dir, func(string) string { return "" }, "alice", "bob")
	res, err := NewRunner(nil, nil).Execute(context.Background(), Options{Input: in, Output: filepath.Join(dir, "r.pptx")})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if hooks.loaded != 2 {
		t.Errorf("OnLoadComplete records = %d, want 2", hooks.loaded)
	}
	if diff := cmp.Diff([]string{"alice", "bob"}, hooks.records); diff != "" {
		t.Errorf("OnRecordComplete mismatch (-want +got):\n%s", diff)
	}
	if int64(hooks.bytes) != res.Stats.Bytes {
		t.Errorf("OnPersistComplete bytes = %d, want %d", hooks.bytes, res.Stats.Bytes)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing input", Options{Output: "a.pptx"}, errors.ErrCodeInvalidPath},
		{"bad input ext", Options{Input: "a.json", Output: "a.pptx"}, errors.ErrCodeInvalidFormat},
		{"bad output ext", Options{Input: "a.csv", Output: "a.pdf"}, errors.ErrCodeInvalidFormat},
		{"font too small", Options{Input: "a.csv", Output: "a.pptx", FontSize: 2}, errors.ErrCodeInvalidInput},
		{"negative timeout", Options{Input: "a.csv", Output: "a.pptx", ImageTimeout: -time.Second}, errors.ErrCodeInvalidInput},
		{"negative cache ttl", Options{Input: "a.csv", Output: "a.pptx", CacheTTL: -time.Hour}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	opts := Options{Input: "in.csv", Output: "out.pptx"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Title != DefaultTitle || opts.FontSize != DefaultFontSize ||
		opts.ImageTimeout != DefaultImageTimeout || opts.CacheTTL != DefaultCacheTTL {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.RunID == "" || opts.Logger == nil {
		t.Error("run id or logger missing")
	}

	keep := Options{Input: "in.csv", Output: "out.pptx", FontSize: 10, RunID: "fixed"}
	keep.SetDefaults()
	if keep.FontSize != 10 || keep.RunID != "fixed" {
		t.Errorf("SetDefaults overwrote explicit values: %+v", keep)
	}
}
