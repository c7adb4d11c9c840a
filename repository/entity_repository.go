package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/theaterbackend/models"
	"gorm.io/gorm"
)

// EntityRepository resolves related catalog entities (countries, genres,
// actors, languages) by their natural key, creating missing rows on
// demand. Concurrent identical requests are guarded by the unique
// constraints on the natural key columns: a lost insert race falls back
// to re-reading the winning row.
type EntityRepository struct {
	DB *gorm.DB
}

// NewEntityRepository creates a new instance of EntityRepository
func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{DB: db}
}

// GetOrCreateCountry looks a country up by its ISO alpha-3 code and
// creates the row if it does not exist yet
func (r *EntityRepository) GetOrCreateCountry(code string) (*models.Country, error) {
	var country models.Country
	err := r.DB.Where("code = ?", code).First(&country).Error
	if err == nil {
		return &country, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up country %q: %w", code, err)
	}

	country = models.Country{Code: code}
	if createErr := r.DB.Create(&country).Error; createErr != nil {
		// lost the race against a concurrent insert for the same code
		if retryErr := r.DB.Where("code = ?", code).First(&country).Error; retryErr == nil {
			return &country, nil
		}
		return nil, fmt.Errorf("failed to create country %q: %w", code, createErr)
	}
	return &country, nil
}

// GetOrCreateGenres resolves genre names to rows, preserving input order
func (r *EntityRepository) GetOrCreateGenres(names []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		var genre models.Genre
		err := r.DB.Where("name = ?", name).First(&genre).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			genre = models.Genre{Name: name}
			if createErr := r.DB.Create(&genre).Error; createErr != nil {
				if retryErr := r.DB.Where("name = ?", name).First(&genre).Error; retryErr != nil {
					return nil, fmt.Errorf("failed to create genre %q: %w", name, createErr)
				}
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up genre %q: %w", name, err)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

// GetOrCreateActors resolves actor names to rows, preserving input order
func (r *EntityRepository) GetOrCreateActors(names []string) ([]models.Actor, error) {
	actors := make([]models.Actor, 0, len(names))
	for _, name := range names {
		var actor models.Actor
		err := r.DB.Where("name = ?", name).First(&actor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			actor = models.Actor{Name: name}
			if createErr := r.DB.Create(&actor).Error; createErr != nil {
				if retryErr := r.DB.Where("name = ?", name).First(&actor).Error; retryErr != nil {
					return nil, fmt.Errorf("failed to create actor %q: %w", name, createErr)
				}
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up actor %q: %w", name, err)
		}
		actors = append(actors, actor)
	}
	return actors, nil
}

// GetOrCreateLanguages resolves language names to rows, preserving input order
func (r *EntityRepository) GetOrCreateLanguages(names []string) ([]models.Language, error) {
	languages := make([]models.Language, 0, len(names))
	for _, name := range names {
		var language models.Language
		err := r.DB.Where("name = ?", name).First(&language).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			language = models.Language{Name: name}
			if createErr := r.DB.Create(&language).Error; createErr != nil {
				if retryErr := r.DB.Where("name = ?", name).First(&language).Error; retryErr != nil {
					return nil, fmt.Errorf("failed to create language %q: %w", name, createErr)
				}
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up language %q: %w", name, err)
		}
		languages = append(languages, language)
	}
	return languages, nil
}
