package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/camden-git/theaterbackend/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func testMovie(name string, year int) *models.Movie {
	return &models.Movie{
		Name:     name,
		Date:     models.NewDate(year, time.July, 16),
		Score:    72.5,
		Overview: "test overview",
		Status:   models.StatusReleased,
		Budget:   1000000,
		Revenue:  2500000,
	}
}

func TestMovieRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	movie := testMovie("Inception", 2010)
	links := EntityLinks{
		Country: "USA",
		Genres:  []string{"Action", "Drama"},
	}
	require.NoError(t, repo.Create(movie, links))
	assert.NotZero(t, movie.ID)

	fetched, err := repo.GetByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inception", fetched.Name)
	assert.Equal(t, "2010-07-16", fetched.Date.String())
	require.NotNil(t, fetched.Country)
	assert.Equal(t, "USA", fetched.Country.Code)
	require.Len(t, fetched.Genres, 2)
	assert.Equal(t, "Action", fetched.Genres[0].Name)
	assert.Equal(t, "Drama", fetched.Genres[1].Name)
}

func TestMovieRepositoryCreateWithoutCountry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	movie := testMovie("Inception", 2010)
	require.NoError(t, repo.Create(movie, EntityLinks{}))

	fetched, err := repo.GetByID(movie.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Country)

	var countryCount int64
	require.NoError(t, db.Model(&models.Country{}).Count(&countryCount).Error)
	assert.Zero(t, countryCount)
}

func TestMovieRepositoryCreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	require.NoError(t, repo.Create(testMovie("Inception", 2010), EntityLinks{}))

	err := repo.Create(testMovie("Inception", 2010), EntityLinks{})
	assert.ErrorIs(t, err, ErrDuplicateMovie)

	var count int64
	require.NoError(t, db.Model(&models.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMovieRepositoryCreateConflictLeavesEntitiesUnchanged(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	first := testMovie("Inception", 2010)
	require.NoError(t, repo.Create(first, EntityLinks{Genres: []string{"Action"}}))

	// conflicting create naming an unseen genre must not leave that
	// genre row behind
	second := testMovie("Inception", 2010)
	err := repo.Create(second, EntityLinks{Genres: []string{"Heist"}, Actors: []string{"New Actor"}})
	require.ErrorIs(t, err, ErrDuplicateMovie)

	var genreCount int64
	require.NoError(t, db.Model(&models.Genre{}).Where("name = ?", "Heist").Count(&genreCount).Error)
	assert.Zero(t, genreCount)
	var actorCount int64
	require.NoError(t, db.Model(&models.Actor{}).Count(&actorCount).Error)
	assert.Zero(t, actorCount)

	// the next successful create starts numbering right after the
	// surviving rows
	third := testMovie("Heat", 1995)
	require.NoError(t, repo.Create(third, EntityLinks{Genres: []string{"Heist"}}))
	fetched, err := repo.GetByID(third.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Genres, 1)
	assert.Equal(t, uint(2), fetched.Genres[0].ID)
}

func TestMovieRepositoryCreateSameNameDifferentDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	require.NoError(t, repo.Create(testMovie("Dune", 1984), EntityLinks{}))
	require.NoError(t, repo.Create(testMovie("Dune", 2021), EntityLinks{}))

	var count int64
	require.NoError(t, db.Model(&models.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestMovieRepositoryGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	_, err := repo.GetByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMovieRepositoryListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	for year := 2001; year <= 2005; year++ {
		require.NoError(t, repo.Create(testMovie("Movie", year), EntityLinks{}))
	}

	movies, total, err := repo.List(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, movies, 2)
	// ordered by descending id
	assert.Greater(t, movies[0].ID, movies[1].ID)

	movies, _, err = repo.List(3, 2)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	// a page past the end is empty, not an error
	movies, total, err = repo.List(4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, movies)
}

func TestMovieRepositoryUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	movie := testMovie("Inception", 2010)
	require.NoError(t, repo.Create(movie, EntityLinks{}))

	err := repo.Update(movie.ID, map[string]interface{}{"score": 91.0})
	require.NoError(t, err)

	fetched, err := repo.GetByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 91.0, fetched.Score)
	// untouched fields survive
	assert.Equal(t, "Inception", fetched.Name)
	assert.Equal(t, models.StatusReleased, fetched.Status)
}

func TestMovieRepositoryUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	err := repo.Update(42, map[string]interface{}{"score": 50.0})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMovieRepositoryUpdateNoFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	movie := testMovie("Inception", 2010)
	require.NoError(t, repo.Create(movie, EntityLinks{}))

	assert.NoError(t, repo.Update(movie.ID, map[string]interface{}{}))
}

func TestMovieRepositoryDeleteKeepsSharedEntities(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	links := EntityLinks{
		Genres: []string{"Action"},
		Actors: []string{"Leonardo DiCaprio"},
	}

	first := testMovie("Inception", 2010)
	require.NoError(t, repo.Create(first, links))

	second := testMovie("The Revenant", 2015)
	require.NoError(t, repo.Create(second, links))

	require.NoError(t, repo.Delete(first.ID))

	_, err := repo.GetByID(first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// join rows for the deleted movie are gone
	var joinCount int64
	require.NoError(t, db.Table("movie_genres").Where("movie_id = ?", first.ID).Count(&joinCount).Error)
	assert.Zero(t, joinCount)

	// shared entities remain queryable via the surviving movie
	fetched, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Genres, 1)
	assert.Equal(t, "Action", fetched.Genres[0].Name)
	require.Len(t, fetched.Actors, 1)
	assert.Equal(t, "Leonardo DiCaprio", fetched.Actors[0].Name)
}

func TestMovieRepositoryDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)

	err := repo.Delete(7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
