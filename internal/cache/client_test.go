package cache

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(server.URL+"/", time.Second, logger)
}

func TestClient_FetchShard(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/cache/popular_page_1.json": `{"page":1,"results":[
			{"id":194,"title":"Amelie","overview":"A shy waitress","genre_ids":[35,"10749"],"release_date":"2001-04-25","vote_average":8.2,"poster_path":"/a.jpg"},
			{"id":"tv-1","name":"Twin Peaks","first_air_date":"1990-04-08","poster_path":"/t.jpg"},
			{"id":{"bad":true}}
		]}`,
	})

	items, err := client.FetchShard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, domain.ID("194"), items[0].ID)
	assert.Equal(t, "Amelie", items[0].Title)
	assert.Equal(t, []int{35, 10749}, items[0].GenreIDs)
	assert.Equal(t, 8.2, items[0].Rating)

	assert.Equal(t, domain.ID("tv-1"), items[1].ID)
	assert.Equal(t, "Twin Peaks", items[1].Title)
	assert.Equal(t, "1990-04-08", items[1].Date())
	assert.Zero(t, items[1].Rating)
}

func TestClient_FetchShard_Absent(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]string
	}{
		{"not found", map[string]string{}},
		{"results missing", map[string]string{"/cache/popular_page_1.json": `{"page":1}`}},
		{"results not an array", map[string]string{"/cache/popular_page_1.json": `{"results":{}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.routes)
			_, err := client.FetchShard(context.Background(), 1)
			assert.ErrorIs(t, err, domain.ErrShardNotFound)
		})
	}
}

func TestClient_FetchShard_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	_, err := client.FetchShard(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrShardNotFound)
}

func TestClient_FetchShard_MalformedBody(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/cache/popular_page_1.json": `not json`,
	})

	_, err := client.FetchShard(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrShardNotFound)
}

func TestClient_FetchShard_Offline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second, nil)
	_, err := client.FetchShard(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestClient_FetchDetail(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/cache/movie_194.json": `{
			"id":194,"title":"Amelie","runtime":122,"tagline":"She'll change your life.",
			"genres":[{"id":35,"name":"Comedy"},{"id":"10749","name":"Romance"}],
			"credits":{"cast":[{"name":"Audrey Tautou","character":"Amelie"}],
			           "crew":[{"name":"Jean-Pierre Jeunet","job":"Director"}]}
		}`,
	})

	detail, err := client.FetchDetail(context.Background(), "194")
	require.NoError(t, err)

	assert.Equal(t, 122, detail.Runtime)
	assert.Equal(t, []int{35, 10749}, detail.GenreIDs)
	assert.Equal(t, []string{"Jean-Pierre Jeunet"}, detail.Directors())
	assert.Equal(t, "Audrey Tautou", detail.Cast[0].Name)
	assert.False(t, detail.Partial)
}

func TestClient_FetchDetail_NotFound(t *testing.T) {
	client := newTestClient(t, map[string]string{})

	_, err := client.FetchDetail(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestClient_FetchGenres(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object form", `{"genres":[{"id":28,"name":"Action"},{"id":"x","name":"Bad"},{"id":"18","name":" Drama "}]}`},
		{"bare array", `[{"id":28,"name":"Action"},{"id":null,"name":"Bad"},{"id":18,"name":" Drama "}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, map[string]string{"/cache/genres.json": tt.body})

			genres, err := client.FetchGenres(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []domain.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: " Drama "}}, genres)
		})
	}
}

func TestImageURLs(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/a.jpg", PosterURL("/a.jpg", "w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/a.jpg", PosterURL("/a.jpg", "huge"))
	assert.Equal(t, "", PosterURL("", "w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/b.jpg", BackdropURL("/b.jpg", "w92"))
	assert.True(t, ValidPosterSize("original"))
	assert.False(t, ValidPosterSize("w1280"))
}
