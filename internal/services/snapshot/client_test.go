package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"voirank/internal/services"
)

type fakeVideo struct {
	id    string
	start time.Time
}

func newSearchServer(t *testing.T, videos []fakeVideo) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("q"); got != "VOICEROID実況プレイ OR CeVIO実況プレイ" {
			t.Errorf("q = %q", got)
		}
		if got := query.Get("targets"); got != "tagsExact" {
			t.Errorf("targets = %q", got)
		}
		if got := query.Get("_sort"); got != "-startTime" {
			t.Errorf("_sort = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "voirank-test" {
			t.Errorf("User-Agent = %q", got)
		}
		offset, _ := strconv.Atoi(query.Get("_offset"))
		limit, _ := strconv.Atoi(query.Get("_limit"))

		matching := videos
		if raw := query.Get("filters[startTime][lte]"); raw != "" {
			cursor, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				t.Errorf("cursor %q: %v", raw, err)
			}
			matching = nil
			for _, v := range videos {
				if !v.start.After(cursor) {
					matching = append(matching, v)
				}
			}
		}
		data := []map[string]any{}
		for i := offset; i < len(matching) && i < offset+limit; i++ {
			data = append(data, map[string]any{
				"contentId":   matching[i].id,
				"title":       "video " + matching[i].id,
				"userId":      100 + i,
				"viewCounter": 10,
				"startTime":   matching[i].start.Format(time.RFC3339),
				"tags":        "VOICEROID実況プレイ 結月ゆかり",
			})
		}
		payload := map[string]any{
			"meta": map[string]any{"status": 200, "totalCount": len(matching)},
			"data": data,
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func descendingVideos(n int) []fakeVideo {
	base := time.Date(2024, 12, 31, 12, 0, 0, 0, time.FixedZone("JST", 9*3600))
	out := make([]fakeVideo, n)
	for i := range out {
		out[i] = fakeVideo{id: fmt.Sprintf("sm%d", n-i), start: base.Add(-time.Duration(i) * time.Hour)}
	}
	return out
}

func TestSearchPagesUntilShortPage(t *testing.T) {
	server := newSearchServer(t, descendingVideos(5))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, UserAgent: "voirank-test", PageSize: 2})
	blob, err := client.Search(context.Background(), Query{
		Category: "game",
		Keywords: []string{"VOICEROID実況プレイ", " ", "CeVIO実況プレイ"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(blob.Data) != 5 {
		t.Fatalf("expected 5 records, got %d", len(blob.Data))
	}
	if blob.Meta.TotalCount != 5 || blob.Meta.Category != "game" {
		t.Fatalf("unexpected meta %+v", blob.Meta)
	}
	if blob.Data[0].ContentID != "sm5" || blob.Data[0].Year() != 2024 {
		t.Fatalf("unexpected first record %+v", blob.Data[0])
	}
	if len(blob.Data[0].Tags) != 2 {
		t.Fatalf("expected tags split on spaces, got %v", blob.Data[0].Tags)
	}
}

func TestSearchSwitchesToCursorPastMaxOffset(t *testing.T) {
	server := newSearchServer(t, descendingVideos(7))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, UserAgent: "voirank-test", PageSize: 2})
	client.maxOffset = 2
	blob, err := client.Search(context.Background(), Query{
		Category: "game",
		Keywords: []string{"VOICEROID実況プレイ", "CeVIO実況プレイ"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(blob.Data) != 7 {
		t.Fatalf("expected 7 unique records, got %d", len(blob.Data))
	}
	seen := map[string]bool{}
	for _, r := range blob.Data {
		if seen[r.ContentID] {
			t.Fatalf("duplicate record %s", r.ContentID)
		}
		seen[r.ContentID] = true
	}
}

func TestSearchHonoursLimit(t *testing.T) {
	server := newSearchServer(t, descendingVideos(9))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, UserAgent: "voirank-test", PageSize: 2})
	blob, err := client.Search(context.Background(), Query{
		Keywords: []string{"VOICEROID実況プレイ", "CeVIO実況プレイ"},
		Limit:    3,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(blob.Data) != 3 {
		t.Fatalf("expected 3 records, got %d", len(blob.Data))
	}
}

func TestSearchClassifiesFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"meta":{"status":503,"errorCode":"MAINTENANCE"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Search(context.Background(), Query{Keywords: []string{"x"}})
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if !services.Skippable(err) {
		t.Fatal("expected maintenance failure to be skippable")
	}
}

func TestSearchRequiresKeywords(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Search(context.Background(), Query{Category: "empty"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
