package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/theaterbackend/models"
)

func TestEntityRepositoryGetOrCreateCountry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)

	created, err := repo.GetOrCreateCountry("USA")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "USA", created.Code)

	// second resolution reuses the existing row
	reused, err := repo.GetOrCreateCountry("USA")
	require.NoError(t, err)
	assert.Equal(t, created.ID, reused.ID)

	var count int64
	require.NoError(t, db.Model(&models.Country{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEntityRepositoryGetOrCreateGenresPreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)

	genres, err := repo.GetOrCreateGenres([]string{"Drama", "Action", "Comedy"})
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Drama", genres[0].Name)
	assert.Equal(t, "Action", genres[1].Name)
	assert.Equal(t, "Comedy", genres[2].Name)
}

func TestEntityRepositoryGetOrCreateGenresIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)

	first, err := repo.GetOrCreateGenres([]string{"Action"})
	require.NoError(t, err)
	second, err := repo.GetOrCreateGenres([]string{"Action"})
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Genre{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEntityRepositoryGetOrCreateActorsAndLanguages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)

	actors, err := repo.GetOrCreateActors([]string{"Leonardo DiCaprio", "Tom Hardy"})
	require.NoError(t, err)
	require.Len(t, actors, 2)
	assert.NotZero(t, actors[0].ID)
	assert.NotEqual(t, actors[0].ID, actors[1].ID)

	languages, err := repo.GetOrCreateLanguages([]string{"English"})
	require.NoError(t, err)
	require.Len(t, languages, 1)
	assert.Equal(t, "English", languages[0].Name)

	// actor and language tables are independent
	var actorCount, langCount int64
	require.NoError(t, db.Model(&models.Actor{}).Count(&actorCount).Error)
	require.NoError(t, db.Model(&models.Language{}).Count(&langCount).Error)
	assert.Equal(t, int64(2), actorCount)
	assert.Equal(t, int64(1), langCount)
}
