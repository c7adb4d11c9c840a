package repository

import (
	"github.com/camden-git/theaterbackend/models"
)

// MovieRepositoryInterface defines the methods for movie data operations
type MovieRepositoryInterface interface {
	List(page, perPage int) ([]models.Movie, int64, error)
	Create(movie *models.Movie, links EntityLinks) error
	GetByID(id uint) (*models.Movie, error)
	Update(movieID uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// EntityResolverInterface defines the find-or-create methods used when
// linking related entities during movie creation
type EntityResolverInterface interface {
	GetOrCreateCountry(code string) (*models.Country, error)
	GetOrCreateGenres(names []string) ([]models.Genre, error)
	GetOrCreateActors(names []string) ([]models.Actor, error)
	GetOrCreateLanguages(names []string) ([]models.Language, error)
}

var (
	_ MovieRepositoryInterface = (*MovieRepository)(nil)
	_ EntityResolverInterface  = (*EntityRepository)(nil)
)
