package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tvtally/internal/apperrors"
	"tvtally/internal/config"
	"tvtally/internal/models"
	"tvtally/internal/testutil"
)

// testConfig returns a config pointed at the test server with throttling and
// caching disabled and fast retry backoff.
func testConfig(serverURL string) *config.Config {
	cfg := &config.Config{
		BaseURL:       serverURL,
		ChartPath:     "/chart/toptv/",
		ClientTimeout: "5s",
	}
	cfg.Throttle.Provider = "none"
	cfg.Cache.Provider = "none"
	cfg.Retry.MaxRetries = 1
	cfg.Retry.InitialBackoff = "1ms"
	cfg.Retry.MaxBackoff = "2ms"
	return cfg
}

func mustNewClient(t *testing.T, cfg *config.Config) Client {
	t.Helper()
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_TopList(t *testing.T) {
	chartHTML := testutil.GenerateChartHTML([]testutil.ChartRowOptions{
		{Rank: 1, Title: "Breaking Bad", Year: 2008, Link: "/title/tt0903747/"},
		{Rank: 2, Title: "The Wire", Year: 2002, Link: "/title/tt0306414/"},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chart/toptv/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(chartHTML))
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	list, err := c.TopList(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(list))
	}

	expected := models.SeriesEntry{
		Name:       "Breaking Bad",
		Rank:       1,
		OriginYear: 2008,
		Link:       "/title/tt0903747/",
		ID:         "Breaking Bad (2008)",
	}
	if list[0] != expected {
		t.Errorf("Expected %+v, got %+v", expected, list[0])
	}
}

func TestClient_TopList_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	_, err := c.TopList(context.Background())
	if !errors.Is(err, &apperrors.ErrBadStatus{}) {
		t.Fatalf("Expected ErrBadStatus, got: %v", err)
	}
}

func TestClient_SeasonCount(t *testing.T) {
	series := models.SeriesEntry{
		Name:       "Breaking Bad",
		Rank:       1,
		OriginYear: 2008,
		Link:       "/title/tt0903747/",
		ID:         "Breaking Bad (2008)",
	}

	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "multi season",
			html: testutil.GenerateTitleHTML(testutil.TitlePageOptions{Seasons: 5}),
			want: 5,
		},
		{
			name: "single season has no selector",
			html: testutil.GenerateTitleHTML(testutil.TitlePageOptions{Seasons: 1}),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != series.Link {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_, _ = w.Write([]byte(tt.html))
			}))
			defer server.Close()

			c := mustNewClient(t, testConfig(server.URL))

			count, err := c.SeasonCount(context.Background(), series)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if count != tt.want {
				t.Errorf("Expected %d seasons, got %d", tt.want, count)
			}
		})
	}
}

func TestClient_EpisodeRatings(t *testing.T) {
	series := models.SeriesEntry{
		Name:       "Breaking Bad",
		Rank:       1,
		OriginYear: 2008,
		Link:       "/title/tt0903747/",
		ID:         "Breaking Bad (2008)",
	}

	titleHTML := testutil.GenerateTitleHTML(testutil.TitlePageOptions{Seasons: 2})
	seasonPages := map[string]string{
		"1": testutil.GenerateEpisodeListHTML([]testutil.EpisodeBlockOptions{
			{Number: "1", Rating: "9.0", Votes: "(30,421)", Description: "Pilot."},
			{Number: "2", Rating: "8.6", Votes: "(22,155)", Description: "The cleanup begins."},
		}),
		"2": testutil.GenerateEpisodeListHTML([]testutil.EpisodeBlockOptions{
			{Number: "1", Rating: "8.7", Votes: "(19,803)"},
		}),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case series.Link:
			_, _ = w.Write([]byte(titleHTML))
		case series.Link + "episodes":
			page, ok := seasonPages[r.URL.Query().Get("season")]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(page))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	episodes, err := c.EpisodeRatings(context.Background(), series)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(episodes) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(episodes))
	}

	first := episodes[0]
	if first.SeriesName != "Breaking Bad" || first.SeriesRank != 1 || first.SeriesOriginYear != 2008 {
		t.Errorf("Series fields not copied onto row: %+v", first)
	}
	if first.SeriesSeasons != 2 {
		t.Errorf("Expected 2 total seasons on row, got %d", first.SeriesSeasons)
	}
	if first.Season != 1 || first.Episode != 1 {
		t.Errorf("Expected s1e1 first, got s%de%d", first.Season, first.Episode)
	}
	if first.Rating != 9.0 || first.TotalVotes != 30421 {
		t.Errorf("Unexpected rating/votes: %v/%d", first.Rating, first.TotalVotes)
	}

	last := episodes[2]
	if last.Season != 2 || last.Episode != 1 {
		t.Errorf("Expected s2e1 last, got s%de%d", last.Season, last.Episode)
	}
	if last.Description != "N/A" {
		t.Errorf("Expected description sentinel on last row, got %q", last.Description)
	}
}

func TestClient_StreamEpisodeRatings_ErrorOnMissingSeasonPage(t *testing.T) {
	series := models.SeriesEntry{
		Name: "Chernobyl", Rank: 3, OriginYear: 2019,
		Link: "/title/tt7366338/", ID: "Chernobyl (2019)",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == series.Link {
			_, _ = w.Write([]byte(testutil.GenerateTitleHTML(testutil.TitlePageOptions{Seasons: 2})))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	var got error
	for res := range c.StreamEpisodeRatings(context.Background(), series) {
		if res.Err != nil {
			got = res.Err
		}
	}
	if !errors.Is(got, &apperrors.ErrBadStatus{}) {
		t.Fatalf("Expected ErrBadStatus from the stream, got: %v", got)
	}
}

func TestClient_EpisodeRatings_NoPartialResultOnParseError(t *testing.T) {
	series := models.SeriesEntry{
		Name: "The Wire", Rank: 2, OriginYear: 2002,
		Link: "/title/tt0306414/", ID: "The Wire (2002)",
	}

	// Season 2's page has a block without the required episode number.
	badSeason := testutil.GenerateEpisodeListHTML([]testutil.EpisodeBlockOptions{
		{IncludeNumber: testutil.BoolPtr(false), Rating: "8.0"},
	})
	goodSeason := testutil.GenerateEpisodeListHTML([]testutil.EpisodeBlockOptions{
		{Number: "1", Rating: "8.3", Votes: "(5,112)"},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == series.Link:
			_, _ = w.Write([]byte(testutil.GenerateTitleHTML(testutil.TitlePageOptions{Seasons: 2})))
		case r.URL.Path == series.Link+"episodes" && r.URL.Query().Get("season") == "1":
			_, _ = w.Write([]byte(goodSeason))
		case r.URL.Path == series.Link+"episodes":
			_, _ = w.Write([]byte(badSeason))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	episodes, err := c.EpisodeRatings(context.Background(), series)
	if err == nil {
		t.Fatal("Expected an error from the malformed season page")
	}
	if episodes != nil {
		t.Errorf("Expected no partial result, got %d rows", len(episodes))
	}
}

func TestClient_RetryOnServerError(t *testing.T) {
	var hits int32
	chartHTML := testutil.GenerateChartHTML([]testutil.ChartRowOptions{
		{Rank: 1, Title: "Band of Brothers", Year: 2001, Link: "/title/tt0185906/"},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(chartHTML))
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	list, err := c.TopList(context.Background())
	if err != nil {
		t.Fatalf("Expected the retry to recover, got: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 series, got %d", len(list))
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Errorf("Expected 2 requests (1 failure + 1 retry), got %d", hits)
	}
}

func TestClient_PageCacheAvoidsRefetch(t *testing.T) {
	series := models.SeriesEntry{
		Name: "Breaking Bad", Rank: 1, OriginYear: 2008,
		Link: "/title/tt0903747/", ID: "Breaking Bad (2008)",
	}

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(testutil.GenerateTitleHTML(testutil.TitlePageOptions{Seasons: 3})))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Cache.Provider = "memory"
	cfg.Cache.Size = 8
	cfg.Cache.TTL = "1h"
	c := mustNewClient(t, cfg)

	for i := 0; i < 2; i++ {
		count, err := c.SeasonCount(context.Background(), series)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if count != 3 {
			t.Errorf("Expected 3 seasons, got %d", count)
		}
	}

	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected the second lookup to come from cache, server saw %d requests", hits)
	}
}

func TestClient_SendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(testutil.GenerateChartHTML(nil)))
	}))
	defer server.Close()

	c := mustNewClient(t, testConfig(server.URL))

	if _, err := c.TopList(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("Expected a browser user agent, got %q", gotUA)
	}
}

func TestClient_SendsConfiguredUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(testutil.GenerateChartHTML(nil)))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.UserAgent = "tvtally-test/1.0"
	c := mustNewClient(t, cfg)

	if _, err := c.TopList(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotUA != "tvtally-test/1.0" {
		t.Errorf("Expected the configured user agent, got %q", gotUA)
	}
}
