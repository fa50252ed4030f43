package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/noteservice"
	"github.com/starford/vaultgraph/internal/testutil"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// testEnv builds a router over the sample vault. A non-empty token enables auth.
func testEnv(t *testing.T, token string) http.Handler {
	t.Helper()
	router, _ := testEnvWithVault(t, testutil.SampleVault(t), token)
	return router
}

func testEnvWithVault(t *testing.T, vaultDir, token string) (http.Handler, *noteservice.Service) {
	t.Helper()
	svc, err := noteservice.New(vaultDir, quiet)
	if err != nil {
		t.Fatalf("noteservice.New: %v", err)
	}
	return NewRouter(svc, quiet, token != "", token, nil), svc
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestStats(t *testing.T) {
	w := get(t, testEnv(t, ""), "/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
	got := decode[models.Stats](t, w)
	want := models.Stats{TotalNotes: 3, TotalTags: 2, TotalLinks: 1, BrokenLinks: 0, OrphanedNotes: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestTags(t *testing.T) {
	w := get(t, testEnv(t, ""), "/tags")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[models.TagsReport](t, w)
	want := []models.TagCount{{Tag: "home", Count: 1}, {Tag: "work", Count: 1}}
	if !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("tags = %+v, want %+v", got.Tags, want)
	}
}

func TestFiles(t *testing.T) {
	w := get(t, testEnv(t, ""), "/files")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[models.FilesReport](t, w)
	if len(got.Files) != 3 || got.Files[0].Path != "A.md" || got.Files[0].LinkCount != 1 {
		t.Errorf("files = %+v", got.Files)
	}
}

func TestLinks(t *testing.T) {
	vault := testutil.TestVault(t, map[string]string{
		"a.md": "[[b]] [[ghost|alias]]",
		"b.md": "",
	})
	router, _ := testEnvWithVault(t, vault, "")
	w := get(t, router, "/links")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[models.LinksReport](t, w)
	want := models.LinksReport{
		Links: []models.Link{
			{Source: "a.md", Target: "b.md", Exists: true},
			{Source: "a.md", Target: "ghost", Exists: false},
		},
		BrokenCount: 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("links = %+v, want %+v", got, want)
	}
}

func TestOrphans(t *testing.T) {
	w := get(t, testEnv(t, ""), "/orphans")
	got := decode[models.OrphansReport](t, w)
	if want := []string{"C.md"}; !reflect.DeepEqual(got.Orphans, want) {
		t.Errorf("orphans = %v, want %v", got.Orphans, want)
	}
}

func TestNotesWithTag(t *testing.T) {
	router := testEnv(t, "")

	w := get(t, router, "/notes?tag=work")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[models.TagSearchReport](t, w)
	if got.Tag != "work" || !reflect.DeepEqual(got.Files, []string{"A.md"}) {
		t.Errorf("report = %+v", got)
	}

	w = get(t, router, "/notes?tag=Work")
	got = decode[models.TagSearchReport](t, w)
	if got.Files == nil || len(got.Files) != 0 {
		t.Errorf("case-sensitive miss = %#v, want empty list", got.Files)
	}

	w = get(t, router, "/notes")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing tag status = %d, want 400", w.Code)
	}
	if body := decode[errResponse](t, w); !strings.Contains(body.Error, "tag") {
		t.Errorf("error = %q", body.Error)
	}
}

func TestBacklinks(t *testing.T) {
	router := testEnv(t, "")

	for _, file := range []string{"B.md", "B"} {
		w := get(t, router, "/backlinks?file="+file)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		got := decode[models.BacklinksReport](t, w)
		if got.File != file || !reflect.DeepEqual(got.Backlinks, []string{"A.md"}) {
			t.Errorf("report for %q = %+v", file, got)
		}
	}

	if w := get(t, router, "/backlinks"); w.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d, want 400", w.Code)
	}
}

func TestVaultRemoved(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vault")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	router, _ := testEnvWithVault(t, dir, "")
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	w := get(t, router, "/stats")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := decode[errResponse](t, w); body.Error != "vault unavailable" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := testEnv(t, "secret")

	tests := []struct {
		name   string
		header []string
		want   int
	}{
		{"no header", nil, http.StatusUnauthorized},
		{"wrong token", []string{"Authorization", "Bearer nope"}, http.StatusUnauthorized},
		{"wrong scheme", []string{"Authorization", "Basic secret"}, http.StatusUnauthorized},
		{"valid", []string{"Authorization", "Bearer secret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := get(t, router, "/stats", tt.header...); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAuthDisabled(t *testing.T) {
	if w := get(t, testEnv(t, ""), "/stats"); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestEventsRouteMounted(t *testing.T) {
	svc, err := noteservice.New(testutil.SampleVault(t), quiet)
	if err != nil {
		t.Fatal(err)
	}
	called := false
	sse := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	router := NewRouter(svc, quiet, true, "secret", sse)

	if w := get(t, router, "/events"); w.Code != http.StatusUnauthorized || called {
		t.Errorf("unauthenticated events: status = %d, called = %v", w.Code, called)
	}
	if w := get(t, router, "/events", "Authorization", "Bearer secret"); w.Code != http.StatusOK || !called {
		t.Errorf("authenticated events: status = %d, called = %v", w.Code, called)
	}
}
