// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

const testMoviesCSV = `movieId,title,overview,genres,release_date,original_language,adult
1,Heat,A thief and a detective,Action|Crime|Thriller,1995-12-15,EN,False
2,Amelie,A shy waitress,"Comedy, Romance",2001-04-25,fr,
,Unmatched,No id here,Drama,2000,en,False
4.0,Alien,In space no one can hear you scream,Horror|Sci-Fi,1979,en,true
5,Blank,,Drama,1990,en,False
`

const testRatingsCSV = `userId,movieId,rating,timestamp
1,1,5.0,964982703
1,2,4.0,964981247
2,1,3.5,964982224
2,4,4.5,964983815
3,bogus,4.0,964983815
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

func newTestReader(t *testing.T) *Reader {
	t.Helper()
	r, err := NewReader(1)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestReader_ReadMovies(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "movies.csv", testMoviesCSV)

	rows, err := newTestReader(t).ReadMovies(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadMovies() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4 (row without id skipped)", len(rows))
	}

	heat := rows[0]
	if heat.Row != 0 || heat.Item.ID != 1 || heat.Item.Title != "Heat" {
		t.Errorf("rows[0] = %+v, want Heat on row 0", heat)
	}
	if len(heat.Item.Genres) != 3 || heat.Item.Genres[0] != "Action" {
		t.Errorf("Heat genres = %v, want [Action Crime Thriller]", heat.Item.Genres)
	}
	if heat.Item.Language != "en" {
		t.Errorf("Heat language = %q, want en", heat.Item.Language)
	}
	if heat.Item.Adult == nil || *heat.Item.Adult {
		t.Errorf("Heat adult = %v, want false", heat.Item.Adult)
	}

	amelie := rows[1]
	if len(amelie.Item.Genres) != 2 || amelie.Item.Genres[1] != "Romance" {
		t.Errorf("Amelie genres = %v, want [Comedy Romance]", amelie.Item.Genres)
	}
	if amelie.Item.Adult != nil {
		t.Errorf("Amelie adult = %v, want nil", *amelie.Item.Adult)
	}

	alien := rows[2]
	if alien.Row != 3 || alien.Item.ID != 4 {
		t.Errorf("rows[2] = row %d id %d, want row 3 id 4", alien.Row, alien.Item.ID)
	}
	if alien.Item.Adult == nil || !*alien.Item.Adult {
		t.Error("Alien adult should be true")
	}
}

func TestReader_ReadMovies_MissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "movies.csv", "movieId,title\n1,Heat\n")
	_, err := newTestReader(t).ReadMovies(context.Background(), path)
	if !errors.Is(err, recommend.ErrInvalidInput) {
		t.Errorf("ReadMovies() error = %v, want ErrInvalidInput", err)
	}
}

func TestReader_ReadRatings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ratings.csv", testRatingsCSV)
	ratings, err := newTestReader(t).ReadRatings(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadRatings() error = %v", err)
	}
	if len(ratings) != 4 {
		t.Fatalf("len(ratings) = %d, want 4 (unparseable row skipped)", len(ratings))
	}
	if ratings[3] != (recommend.RatingEvent{UserID: 2, ItemID: 4, Rating: 4.5}) {
		t.Errorf("ratings[3] = %+v", ratings[3])
	}
}

func TestAlign(t *testing.T) {
	movie := func(row, id int, overview string) MovieRow {
		return MovieRow{Row: row, Item: recommend.Item{ID: id, Title: "t", Overview: overview}}
	}
	matrix := [][]float64{{0}, {1}, {2}, {3}}

	t.Run("full alignment", func(t *testing.T) {
		items, emb, err := Align([]MovieRow{movie(0, 10, "a"), movie(2, 12, "c")}, matrix)
		if err != nil {
			t.Fatalf("Align() error = %v", err)
		}
		if len(items) != 2 || emb[1][0] != 2 {
			t.Errorf("emb = %v, want rows 0 and 2", emb)
		}
	})

	t.Run("compact alignment", func(t *testing.T) {
		movies := []MovieRow{movie(0, 10, "a"), movie(1, 11, ""), movie(2, 12, "c"), movie(3, 13, "d"), movie(4, 14, "e")}
		items, emb, err := Align(movies, matrix)
		if err != nil {
			t.Fatalf("Align() error = %v", err)
		}
		if len(items) != 4 {
			t.Fatalf("len(items) = %d, want 4", len(items))
		}
		if items[1].ID != 12 || emb[1][0] != 1 {
			t.Errorf("item 12 got embedding %v, want row 1", emb[1])
		}
	})

	t.Run("duplicate ids keep first", func(t *testing.T) {
		items, emb, err := Align([]MovieRow{movie(0, 10, "a"), movie(1, 10, "b")}, matrix)
		if err != nil {
			t.Fatalf("Align() error = %v", err)
		}
		if len(items) != 1 || emb[0][0] != 0 {
			t.Errorf("items = %v, want only the first id 10", items)
		}
	})

	t.Run("duplicate without overview does not shadow later copy", func(t *testing.T) {
		items, emb, err := Align([]MovieRow{movie(0, 10, ""), movie(1, 10, "b"), movie(2, 11, "c")}, matrix)
		if err != nil {
			t.Fatalf("Align() error = %v", err)
		}
		if len(items) != 2 || items[0].ID != 10 || items[0].Overview != "b" || emb[0][0] != 1 {
			t.Errorf("items = %v emb = %v, want id 10 from row 1", items, emb)
		}
	})

	t.Run("matrix too short", func(t *testing.T) {
		_, _, err := Align([]MovieRow{movie(9, 10, "a"), movie(10, 11, "b")}, matrix)
		if !errors.Is(err, recommend.ErrInvalidInput) {
			t.Errorf("Align() error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestFillPopularity(t *testing.T) {
	items := []recommend.Item{{ID: 1}, {ID: 2, Popularity: 99}, {ID: 3}}
	ratings := []recommend.RatingEvent{{ItemID: 1}, {ItemID: 1}, {ItemID: 2}}

	if filled := FillPopularity(items, ratings); filled != 1 {
		t.Errorf("FillPopularity() = %d, want 1", filled)
	}
	if items[0].Popularity != 2 || items[1].Popularity != 99 || items[2].Popularity != 0 {
		t.Errorf("popularity = %v/%v/%v, want 2/99/0", items[0].Popularity, items[1].Popularity, items[2].Popularity)
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DatasetConfig{
		MoviesPath:  writeFile(t, dir, "movies.csv", testMoviesCSV),
		RatingsPath: writeFile(t, dir, "ratings.csv", testRatingsCSV),
		EmbeddingsPath: writeNpy(t, dir, encodeNpy(t, "<f4", "(5, 2)", []float32{
			1, 0,
			0, 1,
			1, 1,
			-1, 0,
			0, -1,
		})),
		DuckDBThreads: 1,
		LoadTimeout:   time.Minute,
	}

	ds, err := NewLoader(cfg, zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.Items) != 3 || len(ds.Embeddings) != 3 {
		t.Fatalf("items/embeddings = %d/%d, want 3/3 (empty overview dropped)", len(ds.Items), len(ds.Embeddings))
	}
	if len(ds.Ratings) != 4 {
		t.Errorf("len(Ratings) = %d, want 4", len(ds.Ratings))
	}
	if ds.Items[0].Popularity != 2 {
		t.Errorf("Heat popularity = %v, want 2 ratings", ds.Items[0].Popularity)
	}
	// Alien is on file row 3.
	if ds.Embeddings[2][0] != -1 {
		t.Errorf("Alien embedding = %v, want [-1 0]", ds.Embeddings[2])
	}

	catalog, err := recommend.NewCatalog(ds.Items, ds.Embeddings)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if catalog.Len() != 3 {
		t.Errorf("catalog.Len() = %d, want 3", catalog.Len())
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	cfg := config.DatasetConfig{
		MoviesPath:     filepath.Join(t.TempDir(), "nope.csv"),
		RatingsPath:    filepath.Join(t.TempDir(), "nope.csv"),
		EmbeddingsPath: filepath.Join(t.TempDir(), "nope.npy"),
	}
	if _, err := NewLoader(cfg, zerolog.Nop()).Load(context.Background()); err == nil {
		t.Error("Load() error = nil, want error")
	}
}
