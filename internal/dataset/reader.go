// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	// DuckDB driver - read_csv_auto does the CSV sniffing and typing
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Reader reads dataset files through an in-memory DuckDB instance.
type Reader struct {
	db *sql.DB
}

// NewReader opens an in-memory DuckDB connection. threads <= 0 uses the
// number of CPUs.
func NewReader(threads int) (*Reader, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	connStr := fmt.Sprintf(":memory:?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false", threads)

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close releases the DuckDB connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// MovieRow is one parsed movies.csv row. Row is the zero-based position in
// the file, used to align the row with the embedding matrix.
type MovieRow struct {
	Row  int
	Item recommend.Item
}

// columnAliases maps a canonical field to the header names it may appear as.
var columnAliases = map[string][]string{
	"id":         {"movieid", "movie_id", "id"},
	"title":      {"title", "series_title"},
	"overview":   {"overview", "synopsis", "plot"},
	"genres":     {"genres", "genre"},
	"release":    {"release_date", "released_year", "year"},
	"language":   {"original_language", "language"},
	"adult":      {"adult"},
	"popularity": {"popularity", "vote_count", "num_ratings"},
}

// ReadMovies reads the movies CSV. Every column is read as text and parsed
// here so optional columns can be absent. Rows without a usable movie id
// are skipped; their Row numbers are simply missing from the result.
func (r *Reader) ReadMovies(ctx context.Context, path string) ([]MovieRow, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM read_csv_auto(?, header = true, all_varchar = true)", path)
	if err != nil {
		return nil, fmt.Errorf("read movies %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("movies columns: %w", err)
	}
	pos := resolveColumns(cols)
	for _, required := range []string{"id", "title", "overview"} {
		if _, ok := pos[required]; !ok {
			return nil, fmt.Errorf("%w: movies file %s has no %s column (have %s)",
				recommend.ErrInvalidInput, path, required, strings.Join(cols, ", "))
		}
	}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	var out []MovieRow
	for n := 0; rows.Next(); n++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan movies row %d: %w", n, err)
		}
		get := func(field string) string {
			if i, ok := pos[field]; ok && values[i].Valid {
				return strings.TrimSpace(values[i].String)
			}
			return ""
		}

		id, ok := parseID(get("id"))
		if !ok {
			continue
		}
		item := recommend.Item{
			ID:          id,
			Title:       get("title"),
			Overview:    get("overview"),
			Genres:      splitGenres(get("genres")),
			Language:    strings.ToLower(get("language")),
			ReleaseDate: get("release"),
			Adult:       parseAdult(get("adult")),
		}
		if p, err := strconv.ParseFloat(get("popularity"), 64); err == nil {
			item.Popularity = p
		}
		out = append(out, MovieRow{Row: n, Item: item})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return out, nil
}

// ReadRatings reads userId, movieId and rating. Rows where any of the three
// does not parse are skipped.
func (r *Reader) ReadRatings(ctx context.Context, path string) ([]recommend.RatingEvent, error) {
	const query = `
		SELECT u, m, r FROM (
			SELECT
				TRY_CAST(userId AS BIGINT) AS u,
				TRY_CAST(TRY_CAST(movieId AS DOUBLE) AS BIGINT) AS m,
				TRY_CAST(rating AS DOUBLE) AS r
			FROM read_csv_auto(?, header = true)
		)
		WHERE u IS NOT NULL AND m IS NOT NULL AND r IS NOT NULL
	`
	rows, err := r.db.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("read ratings %s: %w", path, err)
	}
	defer rows.Close()

	var out []recommend.RatingEvent
	for rows.Next() {
		var userID, movieID int64
		var rating float64
		if err := rows.Scan(&userID, &movieID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, recommend.RatingEvent{UserID: int(userID), ItemID: int(movieID), Rating: rating})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return out, nil
}

func resolveColumns(cols []string) map[string]int {
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		byName[strings.ToLower(strings.TrimSpace(c))] = i
	}
	pos := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, a := range aliases {
			if i, ok := byName[a]; ok {
				pos[field] = i
				break
			}
		}
	}
	return pos
}

// parseID accepts "42" and "42.0"; pandas writes nullable integer columns
// as floats.
func parseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if id, err := strconv.Atoi(s); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// splitGenres handles "Action|Drama", "Action, Drama" and "['Action', 'Drama']".
func splitGenres(s string) []string {
	s = strings.Trim(s, "[] ")
	if s == "" || strings.EqualFold(s, "(no genres listed)") {
		return nil
	}
	sep := ","
	if strings.Contains(s, "|") {
		sep = "|"
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(strings.TrimSpace(p), `'"`); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseAdult returns nil when the flag is absent or unparseable.
func parseAdult(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return nil
	}
	return &b
}
