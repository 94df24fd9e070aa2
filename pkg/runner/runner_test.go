package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nmtools/nmrec/pkg/grammar"
	"github.com/nmtools/nmrec/pkg/runner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverWalksDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "run1.mod", "$SIZES LTH=40\n")
	writeFile(t, dir, "run2.ctl", "$SIZES LVR=60\n")
	writeFile(t, dir, "notes.txt", "not a model\n")
	writeFile(t, dir, filepath.Join("nested", "run3.mod"), "$SIZES PD=4\n")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "nested", "run3.mod"),
		filepath.Join(dir, "run1.mod"),
		filepath.Join(dir, "run2.ctl"),
	}
	if len(files) != len(want) {
		t.Fatalf("Discover = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscoverDirectFileSkipsExtensionFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "model.nmctl", "$SIZES LTH=40\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"model.nmctl"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("Discover = %v, want [%s]", files, path)
	}
}

func TestDiscoverCustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "model.nm", "$SIZES LTH=40\n")
	writeFile(t, dir, "model.mod", "$SIZES LTH=40\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".nm"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("Discover = %v, want [%s]", files, path)
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"no-such-file.mod"},
	})
	if err == nil {
		t.Fatal("Discover accepted a missing path")
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "clean.mod", "$PROBLEM ok\n$ABBREVIATED COMRES=5\n")
	writeFile(t, dir, "broken.mod", "$ABBREVIATED COMRES=ABC\n$SIZES LTH=40\n")

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}

	if result.Stats.FilesDiscovered != 2 || result.Stats.FilesChecked != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Stats.FilesWithIssues != 1 || result.Stats.DiagnosticsTotal != 1 {
		t.Errorf("issue stats = %+v", result.Stats)
	}
	// clean.mod: PROBLEM opaque + ABBREVIATED parsed.
	// broken.mod: ABBREVIATED failed + SIZES parsed.
	if result.Stats.RecordsTotal != 4 || result.Stats.RecordsParsed != 2 {
		t.Errorf("record stats = %+v", result.Stats)
	}
	if !result.HasIssues() {
		t.Error("HasIssues = false")
	}

	// Deterministic path order regardless of worker scheduling.
	if len(result.Files) != 2 {
		t.Fatalf("files = %d", len(result.Files))
	}
	if filepath.Base(result.Files[0].Path) != "broken.mod" {
		t.Errorf("Files[0] = %s, want broken.mod first", result.Files[0].Path)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.FilesDiscovered != 0 || result.HasIssues() {
		t.Errorf("result = %+v", result.Stats)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "run1.mod", "$SIZES LTH=40\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	if err == nil {
		t.Fatal("Run ignored cancelled context")
	}
}

func TestCheckFileUnreadable(t *testing.T) {
	t.Parallel()

	outcome := runner.CheckFile(grammar.Default(), filepath.Join(t.TempDir(), "missing.mod"))
	if outcome.Error == nil {
		t.Fatal("CheckFile(missing) has no error")
	}
	if outcome.Stream != nil {
		t.Error("unreadable file produced a stream")
	}
}

func TestCheckFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "run1.mod", "$ABBREVIATED COMRES=5\n")
	outcome := runner.CheckFile(grammar.Default(), path)
	if outcome.Error != nil {
		t.Fatal(outcome.Error)
	}
	if outcome.HasIssues() {
		t.Errorf("diagnostics = %v", outcome.Diagnostics)
	}
	if len(outcome.Stream.Records) != 1 || !outcome.Stream.Records[0].Parsed() {
		t.Error("stream not parsed")
	}
}

func TestDiscoverIgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "run1.mod", "$SIZES LTH=40\n")
	writeFile(t, dir, filepath.Join("archive", "old.mod"), "$ABBREVIATED COMRES=ABC\n")
	writeFile(t, dir, filepath.Join("work", "scratch.mod"), "$SIZES LVR=60\n")
	writeFile(t, dir, filepath.Join("work", "run2.mod"), "$SIZES PD=4\n")

	tests := []struct {
		name   string
		ignore []string
		want   []string
	}{
		{
			name:   "recursive directory pattern",
			ignore: []string{"archive/**"},
			want: []string{
				filepath.Join(dir, "run1.mod"),
				filepath.Join(dir, "work", "run2.mod"),
				filepath.Join(dir, "work", "scratch.mod"),
			},
		},
		{
			name:   "basename anywhere",
			ignore: []string{"**/scratch.mod"},
			want: []string{
				filepath.Join(dir, "archive", "old.mod"),
				filepath.Join(dir, "run1.mod"),
				filepath.Join(dir, "work", "run2.mod"),
			},
		},
		{
			name:   "plain glob against base name",
			ignore: []string{"run*.mod"},
			want: []string{
				filepath.Join(dir, "archive", "old.mod"),
				filepath.Join(dir, "work", "scratch.mod"),
			},
		},
		{
			name:   "multiple patterns",
			ignore: []string{"archive/**", "work/**"},
			want: []string{
				filepath.Join(dir, "run1.mod"),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Ignore:     tt.ignore,
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(files) != len(tt.want) {
				t.Fatalf("Discover = %v, want %v", files, tt.want)
			}
			for i := range tt.want {
				if files[i] != tt.want[i] {
					t.Errorf("files[%d] = %q, want %q", i, files[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiscoverIgnoreSkipsDirectFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, filepath.Join("archive", "old.mod"), "$SIZES LTH=40\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{path},
		Ignore:     []string{"archive/**"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("Discover = %v, want explicitly named file kept", files)
	}
}
