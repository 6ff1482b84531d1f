package gallery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/models"
	"github.com/improv-tovarisch/backend/pkg/videometa"
)

func init() {
	logger.Init(false)
}

// echoes the requested video id back so order mixups are visible
func oembedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target, err := url.Parse(r.URL.Query().Get("url"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		id := target.Query().Get("v")
		fmt.Fprintf(w, `{"title":"Ролик %s","author_name":"Канал","thumbnail_url":"https://img.example/%s.jpg"}`, id, id)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveVideos_PreservesOrderAndIsolatesFailures(t *testing.T) {
	srv := oembedServer(t)

	sources := []models.VideoSource{
		{URL: "https://www.youtube.com/watch?v=aaaaaaaaaaa", Duration: "10 минут"},
		{URL: "https://www.youtube.com/watch?v=bbbbbbbbbbb", Duration: "12 минут"},
		{URL: "https://example.com/not-a-video"},
		{URL: "https://www.youtube.com/watch?v=ccccccccccc", Duration: "7 минут"},
		{URL: "https://www.youtube.com/watch?v=ddddddddddd"},
	}

	svc := NewService(videometa.NewFetcher(videometa.WithOEmbedEndpoint(srv.URL)), WithConcurrency(3))
	got := svc.ResolveVideos(context.Background(), sources)

	if len(got) != len(sources) {
		t.Fatalf("want %d resources, got %d", len(sources), len(got))
	}

	wantIDs := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "https://example.com/not-a-video", "ccccccccccc", "ddddddddddd"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("position %d: got id %q, want %q", i, got[i].ID, want)
		}
	}

	if got[1].Title != "Ролик bbbbbbbbbbb" {
		t.Errorf("unexpected title %q", got[1].Title)
	}
	if got[1].Duration != "12 минут" {
		t.Errorf("duration hint lost: %q", got[1].Duration)
	}
	if got[2].MetadataSource != models.SourceFallback {
		t.Errorf("unresolvable source must fall back, got %q", got[2].MetadataSource)
	}
	for i, r := range got {
		if r.PreviewImage == "" {
			t.Errorf("position %d: empty preview image", i)
		}
		if r.Title == "" {
			t.Errorf("position %d: empty title", i)
		}
	}
}

func TestResolveVideos_FallbackCardIsComplete(t *testing.T) {
	svc := NewService(videometa.NewFetcher())

	got := svc.ResolveVideos(context.Background(), []models.VideoSource{
		{URL: "https://example.com/clip", Duration: "5 минут"},
	})

	r := got[0]
	if r.MetadataSource != models.SourceFallback {
		t.Fatalf("want fallback, got %q", r.MetadataSource)
	}
	if r.Title != "unknown • https://example.com/clip" {
		t.Errorf("unexpected fallback title %q", r.Title)
	}
	if r.URL != "https://example.com/clip" {
		t.Errorf("link must survive the fallback, got %q", r.URL)
	}
	if !strings.HasPrefix(r.PreviewImage, "data:image/svg+xml;base64,") {
		t.Errorf("fallback preview must be generated art, got %q", r.PreviewImage)
	}
	if r.Duration != "5 минут" {
		t.Errorf("duration hint lost: %q", r.Duration)
	}
}

func TestResolveVideos_Empty(t *testing.T) {
	svc := NewService(videometa.NewFetcher())

	got := svc.ResolveVideos(context.Background(), nil)
	if len(got) != 0 {
		t.Fatalf("want empty result, got %v", got)
	}
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	if len(sources) != 4 {
		t.Fatalf("want 4 curated sources, got %d", len(sources))
	}
	for _, src := range sources {
		if src.URL == "" || src.Platform == models.PlatformUnknown {
			t.Errorf("curated source must be resolvable: %+v", src)
		}
	}
}
