package noteservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/testutil"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newService(t *testing.T, dir string) *Service {
	t.Helper()
	svc, err := New(dir, quiet)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestSampleVault(t *testing.T) {
	svc := newService(t, testutil.SampleVault(t))
	ctx := context.Background()

	tags, err := svc.CollectTags(ctx)
	if err != nil {
		t.Fatalf("CollectTags: %v", err)
	}
	wantTags := []models.TagCount{{Tag: "home", Count: 1}, {Tag: "work", Count: 1}}
	if !reflect.DeepEqual(tags, wantTags) {
		t.Errorf("tags = %+v, want %+v", tags, wantTags)
	}

	orphans, err := svc.FindOrphans(ctx)
	if err != nil {
		t.Fatalf("FindOrphans: %v", err)
	}
	if want := []string{"C.md"}; !reflect.DeepEqual(orphans, want) {
		t.Errorf("orphans = %v, want %v", orphans, want)
	}

	links, notes, err := svc.CollectLinks(ctx)
	if err != nil {
		t.Fatalf("CollectLinks: %v", err)
	}
	if want := []models.Link{{Source: "A.md", Target: "B.md", Exists: true}}; !reflect.DeepEqual(links, want) {
		t.Errorf("links = %+v, want %+v", links, want)
	}
	if want := []string{"A.md", "B.md", "C.md"}; !reflect.DeepEqual(notes, want) {
		t.Errorf("notes = %v, want %v", notes, want)
	}

	stats, err := svc.ComputeStats(ctx)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	wantStats := models.Stats{TotalNotes: 3, TotalTags: 2, TotalLinks: 1, BrokenLinks: 0, OrphanedNotes: 1}
	if stats != wantStats {
		t.Errorf("stats = %+v, want %+v", stats, wantStats)
	}

	backlinks, err := svc.FindBacklinks(ctx, "B.md")
	if err != nil {
		t.Fatalf("FindBacklinks: %v", err)
	}
	if want := []string{"A.md"}; !reflect.DeepEqual(backlinks, want) {
		t.Errorf("backlinks = %v, want %v", backlinks, want)
	}

	tagged, err := svc.FindNotesWithTag(ctx, "home")
	if err != nil {
		t.Fatalf("FindNotesWithTag: %v", err)
	}
	if want := []string{"B.md"}; !reflect.DeepEqual(tagged, want) {
		t.Errorf("tagged = %v, want %v", tagged, want)
	}
}

func TestCollectFiles(t *testing.T) {
	svc := newService(t, testutil.TestVault(t, map[string]string{
		"b.md":        "one two three #x [[a]]",
		"a.md":        "",
		"dir/c.md":    "#y #y",
		"ignored.txt": "#z",
	}))
	files, err := svc.CollectFiles(context.Background())
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %+v, want 3 entries", files)
	}
	paths := []string{files[0].Path, files[1].Path, files[2].Path}
	if want := []string{"a.md", "b.md", "dir/c.md"}; !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	b := files[1]
	if b.WordCount != 5 || b.LinkCount != 1 || b.TagCount != 1 {
		t.Errorf("b.md = %+v", b)
	}
	if files[2].TagCount != 2 {
		t.Errorf("dir/c.md tag count = %d, want 2", files[2].TagCount)
	}
	if b.Modified == models.UnknownModified || b.Modified == "" {
		t.Errorf("b.md modified = %q, want a timestamp", b.Modified)
	}
}

func TestBrokenLinkKeepsRawText(t *testing.T) {
	svc := newService(t, testutil.TestVault(t, map[string]string{
		"a.md": "[[Missing Note|shown]] and [[a]]",
	}))
	links, _, err := svc.CollectLinks(context.Background())
	if err != nil {
		t.Fatalf("CollectLinks: %v", err)
	}
	want := []models.Link{
		{Source: "a.md", Target: "Missing Note", Exists: false},
		{Source: "a.md", Target: "a.md", Exists: true},
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %+v, want %+v", links, want)
	}
}

func TestInvalidVault(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), quiet); !errors.Is(err, apperr.ErrInvalidVault) {
		t.Errorf("New err = %v, want ErrInvalidVault", err)
	}

	dir := filepath.Join(t.TempDir(), "vault")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	svc := newService(t, dir)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ComputeStats(context.Background()); !errors.Is(err, apperr.ErrInvalidVault) {
		t.Errorf("ComputeStats err = %v, want ErrInvalidVault", err)
	}
	if _, err := svc.FindOrphans(context.Background()); !errors.Is(err, apperr.ErrInvalidVault) {
		t.Errorf("FindOrphans err = %v, want ErrInvalidVault", err)
	}
}

func TestEmptyVault(t *testing.T) {
	svc := newService(t, t.TempDir())
	ctx := context.Background()

	stats, err := svc.ComputeStats(ctx)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if stats != (models.Stats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
	orphans, err := svc.FindOrphans(ctx)
	if err != nil {
		t.Fatalf("FindOrphans: %v", err)
	}
	if orphans == nil || len(orphans) != 0 {
		t.Errorf("orphans = %#v, want empty non-nil slice", orphans)
	}
}

func TestRepeatedRunsAreIdentical(t *testing.T) {
	dir := testutil.TestVault(t, map[string]string{
		"z.md":        "#b #a [[m]] [[x/y]]",
		"m.md":        "---\ntags: [\"q\", r]\n---\n[[z]] [[gone]]",
		"x/y.md":      "#a\n- not a tag",
		"x/deep/y.md": "[[y]]",
		"lonely.md":   "words only",
	})
	svc := newService(t, dir)

	render := func() []byte {
		t.Helper()
		ctx := context.Background()
		tags, err := svc.CollectTags(ctx)
		if err != nil {
			t.Fatal(err)
		}
		files, err := svc.CollectFiles(ctx)
		if err != nil {
			t.Fatal(err)
		}
		links, _, err := svc.CollectLinks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		orphans, err := svc.FindOrphans(ctx)
		if err != nil {
			t.Fatal(err)
		}
		backlinks, err := svc.FindBacklinks(ctx, "y")
		if err != nil {
			t.Fatal(err)
		}
		stats, err := svc.ComputeStats(ctx)
		if err != nil {
			t.Fatal(err)
		}
		data, err := json.Marshal([]any{tags, files, links, orphans, backlinks, stats})
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first, second := render(), render()
	if !bytes.Equal(first, second) {
		t.Errorf("runs differ:\n%s\n%s", first, second)
	}
}
