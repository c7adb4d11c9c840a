package importer

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/camden-git/theaterbackend/models"
)

const testCSV = `name,date,score,overview,status,budget,revenue,country,genres,actors,languages
Inception,2010-07-16,73.0,A thief who steals corporate secrets.,Released,160000000,829895144,USA,"Action,Sci-Fi",Leonardo DiCaprio,English
The Revenant,2015-12-25,78.0,A frontiersman fights for survival.,Released,135000000,533000000,USA,Action,"Leonardo DiCaprio,Tom Hardy",English
Broken Row,not-a-date,50.0,Broken.,Released,0,0,USA,Action,Nobody,English
`

func setupImporterTest(t *testing.T) (*sql.DB, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Country{},
		&models.Genre{},
		&models.Actor{},
		&models.Language{},
		&models.Movie{},
	)
	require.NoError(t, err)

	return sqlDB, db
}

func writeTestCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	var count int64
	require.NoError(t, db.Table(table).Count(&count).Error)
	return count
}

func TestCSVImporterSeed(t *testing.T) {
	sqlDB, db := setupImporterTest(t)
	imp := NewCSVImporter(sqlDB, writeTestCSV(t, testCSV), sq.Question)

	populated, err := imp.IsPopulated()
	require.NoError(t, err)
	assert.False(t, populated)

	require.NoError(t, imp.Seed())

	// the malformed row is skipped, the valid ones loaded
	assert.Equal(t, int64(2), countRows(t, db, "movies"))
	assert.Equal(t, int64(1), countRows(t, db, "countries"))
	assert.Equal(t, int64(2), countRows(t, db, "genres"))
	assert.Equal(t, int64(2), countRows(t, db, "actors"))
	assert.Equal(t, int64(1), countRows(t, db, "languages"))
	assert.Equal(t, int64(3), countRows(t, db, "movie_genres"))
	assert.Equal(t, int64(3), countRows(t, db, "movie_actors"))
	assert.Equal(t, int64(2), countRows(t, db, "movie_languages"))

	populated, err = imp.IsPopulated()
	require.NoError(t, err)
	assert.True(t, populated)
}

func TestCSVImporterSeedIsIdempotent(t *testing.T) {
	sqlDB, db := setupImporterTest(t)
	imp := NewCSVImporter(sqlDB, writeTestCSV(t, testCSV), sq.Question)

	require.NoError(t, imp.Seed())
	require.NoError(t, imp.Seed())

	assert.Equal(t, int64(2), countRows(t, db, "movies"))
	assert.Equal(t, int64(2), countRows(t, db, "genres"))
	assert.Equal(t, int64(2), countRows(t, db, "actors"))
	assert.Equal(t, int64(3), countRows(t, db, "movie_genres"))
}

func TestCSVImporterMissingColumn(t *testing.T) {
	sqlDB, _ := setupImporterTest(t)
	imp := NewCSVImporter(sqlDB, writeTestCSV(t, "name,date\nInception,2010-07-16\n"), sq.Question)

	err := imp.Seed()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestCSVImporterMissingFile(t *testing.T) {
	sqlDB, _ := setupImporterTest(t)
	imp := NewCSVImporter(sqlDB, filepath.Join(t.TempDir(), "nope.csv"), sq.Question)

	assert.Error(t, imp.Seed())
}
