package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"filmsort/internal/config"
	"filmsort/internal/fileops"
	"filmsort/internal/library"
	"filmsort/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.SourceDirs = []string{t.TempDir()}
	cfg.Paths.LibraryDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Scan.MinSizeMB = 0
	return &cfg
}

func writeSource(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.SourceDirs[0], name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 512)), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openStore(t *testing.T, cfg *config.Config) *library.Store {
	t.Helper()
	store, err := library.Open(cfg.LedgerPath())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunOrganizesAndRecords(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	src := writeSource(t, cfg, "Heat.1995.1080p.BluRay.x264.mkv")

	o, err := New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	summary, err := o.Run(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Scanned != 1 || summary.Moved != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	want := filepath.Join(cfg.Paths.LibraryDir, "Heat (1995)", "Heat (1995) Bluray-1080p.mkv")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("destination missing: %v", err)
	}
	if _, err := os.Stat(src); err == nil {
		t.Error("source should be gone")
	}

	transfers, err := store.RecentTransfers(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 1 {
		t.Fatalf("got %d transfers", len(transfers))
	}
	row := transfers[0]
	if row.Title != "Heat" || row.Year != 1995 || row.Media != "Bluray" || !row.Success {
		t.Errorf("transfer row = %+v", row)
	}
}

func TestRunKeepsLargerExistingCopy(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	src := writeSource(t, cfg, "Heat.1995.1080p.BluRay.x264.mkv")

	existing := filepath.Join(cfg.Paths.LibraryDir, "Heat (1995)", "Heat (1995) Bluray-1080p.mkv")
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte(strings.Repeat("y", 4096)), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	summary, err := o.Run(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Moved != 0 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v, want the smaller source skipped", summary)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("rejected source must stay in place")
	}
	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 4096 {
		t.Errorf("library copy is %d bytes, want the original 4096", len(data))
	}

	transfers, err := store.RecentTransfers(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 1 || transfers[0].Success || transfers[0].Action != string(fileops.ActionRejected) {
		t.Errorf("transfers = %+v", transfers)
	}
}

func TestRunDryRunMovesNothing(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	src := writeSource(t, cfg, "Arrival.2016.2160p.WEB-DL.HDR.mkv")

	o, err := New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	summary, err := o.Run(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Moved != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("dry run must leave the source in place")
	}
	entries, err := os.ReadDir(cfg.Paths.LibraryDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created %d library entries", len(entries))
	}
}

func TestPlansRenderDestinations(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, filepath.Join(
		"Rogue.One.A.Star.Wars.Story.2016.PROPER.1080p.BluRay.DTS.x264-DON",
		"Rogue.One.A.Star.Wars.Story.2016.PROPER.1080p.BluRay.DTS.x264-DON.mkv"))

	o, err := New(cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	plans, err := o.Plans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans", len(plans))
	}
	plan := plans[0]
	if plan.Attrs.Title != "Rogue One A Star Wars Story" || plan.Attrs.Year != 2016 {
		t.Errorf("attrs = %+v", plan.Attrs)
	}
	want := filepath.Join(cfg.Paths.LibraryDir,
		"Rogue One A Star Wars Story (2016)",
		"Rogue One A Star Wars Story (2016) Bluray-1080p Proper.mkv")
	if plan.Destination != want {
		t.Errorf("destination = %q, want %q", plan.Destination, want)
	}
}

func TestRunRefusesSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatal(err)
	}

	held := flock.New(cfg.LockPath())
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not take lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	o, err := New(cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	_, err = o.Run(context.Background(), false)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("err = %v, want ErrAlreadyRunning", err)
	}
}

func TestSweepStalePartials(t *testing.T) {
	lib := t.TempDir()
	stale := filepath.Join(lib, "Heat (1995)", "Heat (1995).mkv"+fileops.PartialSuffix)
	fresh := filepath.Join(lib, "fresh.mkv"+fileops.PartialSuffix)
	for _, path := range []string{stale, fresh} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	sweepStalePartials(lib, 24*time.Hour, logging.NewNop())

	if _, err := os.Stat(stale); err == nil {
		t.Error("stale staging file should be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh staging file should be kept")
	}
}

func TestFallbackTitle(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/src/some_random_film.mkv", "Some Random Film"},
		{"/src/another-film.mkv", "Another Film"},
		{"", "Unknown Film"},
	}
	for _, tc := range cases {
		if got := fallbackTitle(tc.path); got != tc.want {
			t.Errorf("fallbackTitle(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
