package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/theaterbackend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateMovie indicates a movie with the same (name, date) pair
// already exists.
var ErrDuplicateMovie = errors.New("movie with the same name and date already exists")

// MovieRepository handles database operations for Movie entities
type MovieRepository struct {
	DB *gorm.DB
}

// NewMovieRepository creates a new instance of MovieRepository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{DB: db}
}

// List retrieves one page of movies ordered by descending ID along with
// the total number of movies in the catalog. Page bounds are validated
// by the caller; a page past the end yields an empty slice, not an error.
func (r *MovieRepository) List(page, perPage int) ([]models.Movie, int64, error) {
	var totalItems int64
	if err := r.DB.Model(&models.Movie{}).Count(&totalItems).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	var movies []models.Movie
	offset := (page - 1) * perPage
	err := r.DB.Order("id DESC").Limit(perPage).Offset(offset).Find(&movies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, totalItems, nil
}

// EntityLinks carries the natural keys of the entities a new movie
// should be linked to.
type EntityLinks struct {
	Country   string
	Genres    []string
	Actors    []string
	Languages []string
}

// Create inserts a movie row together with its resolved entities and
// join rows in a single transaction. The duplicate (name, date) check
// runs first, so a conflicting request never creates entity rows.
// Returns ErrDuplicateMovie if a movie with the same (name, date)
// already exists.
func (r *MovieRepository) Create(movie *models.Movie, links EntityLinks) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Movie{}).
			Where("name = ? AND date = ?", movie.Name, movie.Date).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check for duplicate movie %s: %w", movie.Name, err)
		}
		if count > 0 {
			return ErrDuplicateMovie
		}

		entities := NewEntityRepository(tx)
		if links.Country != "" {
			country, err := entities.GetOrCreateCountry(links.Country)
			if err != nil {
				return err
			}
			movie.CountryID = &country.ID
			movie.Country = country
		}
		genres, err := entities.GetOrCreateGenres(links.Genres)
		if err != nil {
			return err
		}
		movie.Genres = genres
		actors, err := entities.GetOrCreateActors(links.Actors)
		if err != nil {
			return err
		}
		movie.Actors = actors
		languages, err := entities.GetOrCreateLanguages(links.Languages)
		if err != nil {
			return err
		}
		movie.Languages = languages

		if err := tx.Create(movie).Error; err != nil {
			return fmt.Errorf("failed to create movie %s: %w", movie.Name, err)
		}
		return nil
	})
}

// GetByID retrieves a movie by its ID with all relationships populated.
// Associated entities are preloaded in ascending ID order.
func (r *MovieRepository) GetByID(id uint) (*models.Movie, error) {
	var movie models.Movie
	err := r.DB.
		Preload("Country").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id ASC") }).
		Preload("Actors", func(db *gorm.DB) *gorm.DB { return db.Order("actors.id ASC") }).
		Preload("Languages", func(db *gorm.DB) *gorm.DB { return db.Order("languages.id ASC") }).
		First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get movie by ID %d: %w", id, err)
	}
	return &movie, nil
}

// Update applies only the supplied column values to an existing movie
func (r *MovieRepository) Update(movieID uint, updates map[string]interface{}) error {
	var count int64
	if err := r.DB.Model(&models.Movie{}).Where("id = ?", movieID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check movie ID %d: %w", movieID, err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(updates) == 0 {
		return nil
	}

	result := r.DB.Model(&models.Movie{}).Where("id = ?", movieID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update movie ID %d: %w", movieID, result.Error)
	}
	return nil
}

// Delete removes a movie and its join-table rows in a single
// transaction. Shared genre/actor/language/country rows are left intact.
func (r *MovieRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var movie models.Movie
		if err := tx.First(&movie, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return fmt.Errorf("failed to get movie ID %d for deletion: %w", id, err)
		}

		// Select(clause.Associations) clears the many2many join rows
		// without touching the associated entity rows
		if err := tx.Select(clause.Associations).Delete(&movie).Error; err != nil {
			return fmt.Errorf("failed to delete movie ID %d: %w", id, err)
		}
		return nil
	})
}
