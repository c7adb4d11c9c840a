package importer

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/theaterbackend/models"
)

// CSVImporter seeds the catalog from a tabular movie dataset. It works
// directly on the raw connection so bulk runs bypass the ORM layer.
//
// Expected columns: name, date, score, overview, status, budget,
// revenue, country, genres, actors, languages. The genres, actors and
// languages cells hold comma-separated name lists.
type CSVImporter struct {
	DB      *sql.DB
	Path    string
	builder sq.StatementBuilderType
}

// NewCSVImporter creates an importer for the given CSV file. The
// placeholder format must match the target database (Question for
// SQLite, Dollar for PostgreSQL).
func NewCSVImporter(db *sql.DB, path string, placeholder sq.PlaceholderFormat) *CSVImporter {
	return &CSVImporter{
		DB:      db,
		Path:    path,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// IsPopulated reports whether the movies table already holds data, so
// startup seeding can be skipped
func (imp *CSVImporter) IsPopulated() (bool, error) {
	sqlStr, args, err := imp.builder.Select("COUNT(*)").From("movies").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build movie count query: %w", err)
	}
	var count int64
	if err := imp.DB.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count movies: %w", err)
	}
	return count > 0, nil
}

// Seed reads the CSV file and loads reference entities, movies and join
// rows in a single transaction. Rows with malformed required fields are
// skipped with a warning; an already-present (name, date) pair is
// skipped silently so repeated runs stay idempotent.
func (imp *CSVImporter) Seed() error {
	file, err := os.Open(imp.Path)
	if err != nil {
		return fmt.Errorf("failed to open dataset %s: %w", imp.Path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read dataset header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"name", "date", "score", "overview", "status", "budget", "revenue", "country"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("dataset is missing required column %q", required)
		}
	}

	tx, err := imp.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seeding transaction: %w", err)
	}
	defer tx.Rollback()

	seeded := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read dataset row: %w", err)
		}

		if err := imp.seedRow(tx, columns, record); err != nil {
			log.Printf("Warning: skipping dataset row for %q: %v", cell(record, columns, "name"), err)
			continue
		}
		seeded++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seeding transaction: %w", err)
	}
	log.Printf("Seeded %d movies from %s", seeded, imp.Path)
	return nil
}

func (imp *CSVImporter) seedRow(tx *sql.Tx, columns map[string]int, record []string) error {
	name := strings.TrimSpace(cell(record, columns, "name"))
	if name == "" {
		return fmt.Errorf("empty name")
	}
	date, err := models.ParseDate(strings.TrimSpace(cell(record, columns, "date")))
	if err != nil {
		return err
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(cell(record, columns, "score")), 64)
	if err != nil {
		return fmt.Errorf("invalid score: %w", err)
	}
	budget, err := strconv.ParseFloat(strings.TrimSpace(cell(record, columns, "budget")), 64)
	if err != nil {
		return fmt.Errorf("invalid budget: %w", err)
	}
	revenue, err := strconv.ParseFloat(strings.TrimSpace(cell(record, columns, "revenue")), 64)
	if err != nil {
		return fmt.Errorf("invalid revenue: %w", err)
	}
	status := strings.TrimSpace(cell(record, columns, "status"))
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	overview := strings.TrimSpace(cell(record, columns, "overview"))
	countryCode := strings.ToUpper(strings.TrimSpace(cell(record, columns, "country")))
	if len(countryCode) != 3 {
		return fmt.Errorf("invalid country code %q", countryCode)
	}

	// existing (name, date) pairs are skipped so re-runs stay idempotent
	existingID, err := imp.lookupID(tx, "movies", sq.Eq{"name": name, "date": date.String()})
	if err != nil {
		return err
	}
	if existingID != 0 {
		return nil
	}

	countryID, err := imp.getOrCreate(tx, "countries", "code", countryCode)
	if err != nil {
		return err
	}

	insert := imp.builder.Insert("movies").
		Columns("name", "date", "score", "overview", "status", "budget", "revenue", "country_id").
		Values(name, date.String(), score, overview, status, budget, revenue, countryID)
	if err := imp.exec(tx, insert); err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	movieID, err := imp.lookupID(tx, "movies", sq.Eq{"name": name, "date": date.String()})
	if err != nil {
		return err
	}

	if err := imp.linkEntities(tx, movieID, "genres", "movie_genres", "genre_id", splitList(cell(record, columns, "genres"))); err != nil {
		return err
	}
	if err := imp.linkEntities(tx, movieID, "actors", "movie_actors", "actor_id", splitList(cell(record, columns, "actors"))); err != nil {
		return err
	}
	if err := imp.linkEntities(tx, movieID, "languages", "movie_languages", "language_id", splitList(cell(record, columns, "languages"))); err != nil {
		return err
	}
	return nil
}

// linkEntities find-or-creates each named entity and inserts the join
// rows tying them to the movie
func (imp *CSVImporter) linkEntities(tx *sql.Tx, movieID int64, table, joinTable, joinColumn string, names []string) error {
	for _, name := range names {
		entityID, err := imp.getOrCreate(tx, table, "name", name)
		if err != nil {
			return err
		}
		insert := imp.builder.Insert(joinTable).
			Columns("movie_id", joinColumn).
			Values(movieID, entityID)
		if err := imp.exec(tx, insert); err != nil {
			return fmt.Errorf("failed to link %s %q: %w", table, name, err)
		}
	}
	return nil
}

// getOrCreate looks an entity up by its natural key column, inserting
// the row when absent, and returns its ID
func (imp *CSVImporter) getOrCreate(tx *sql.Tx, table, keyColumn, keyValue string) (int64, error) {
	id, err := imp.lookupID(tx, table, sq.Eq{keyColumn: keyValue})
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}

	insert := imp.builder.Insert(table).Columns(keyColumn).Values(keyValue)
	if err := imp.exec(tx, insert); err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	id, err = imp.lookupID(tx, table, sq.Eq{keyColumn: keyValue})
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("row vanished after insert into %s", table)
	}
	return id, nil
}

func (imp *CSVImporter) lookupID(tx *sql.Tx, table string, where sq.Eq) (int64, error) {
	sqlStr, args, err := imp.builder.Select("id").From(table).Where(where).Limit(1).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build lookup query for %s: %w", table, err)
	}
	var id int64
	err = tx.QueryRow(sqlStr, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up id in %s: %w", table, err)
	}
	return id, nil
}

func (imp *CSVImporter) exec(tx *sql.Tx, insert sq.InsertBuilder) error {
	sqlStr, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}
	_, err = tx.Exec(sqlStr, args...)
	return err
}

func cell(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
