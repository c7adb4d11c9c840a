package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/camden-git/theaterbackend/models"
)

const (
	defaultPerPage = 10
	maxPerPage     = 20
)

var titleCaser = cases.Title(language.Und)

// GenreSchema is the nested genre shape in movie detail responses.
type GenreSchema struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ActorSchema is the nested actor shape in movie detail responses.
type ActorSchema struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LanguageSchema is the nested language shape in movie detail responses.
type LanguageSchema struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CountrySchema is the nested country shape in movie detail responses.
type CountrySchema struct {
	ID   uint    `json:"id"`
	Code string  `json:"code"`
	Name *string `json:"name"`
}

// MovieDetailSchema is the full movie shape with nested relationships.
type MovieDetailSchema struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Date      models.Date      `json:"date"`
	Score     float64          `json:"score"`
	Overview  string           `json:"overview"`
	Status    string           `json:"status"`
	Budget    float64          `json:"budget"`
	Revenue   float64          `json:"revenue"`
	Country   *CountrySchema   `json:"country"`
	Genres    []GenreSchema    `json:"genres"`
	Actors    []ActorSchema    `json:"actors"`
	Languages []LanguageSchema `json:"languages"`
}

// MovieListItemSchema is the condensed movie shape used in listings.
type MovieListItemSchema struct {
	ID       uint        `json:"id"`
	Name     string      `json:"name"`
	Date     models.Date `json:"date"`
	Score    float64     `json:"score"`
	Overview string      `json:"overview"`
}

// MovieListResponseSchema is the paginated listing payload.
type MovieListResponseSchema struct {
	Movies     []MovieListItemSchema `json:"movies"`
	PrevPage   *string               `json:"prev_page"`
	NextPage   *string               `json:"next_page"`
	TotalPages int                   `json:"total_pages"`
	TotalItems int64                 `json:"total_items"`
}

// MovieCreateRequest is the creation payload. Numeric fields are
// pointers so that a missing field is distinguishable from a zero value.
type MovieCreateRequest struct {
	Name      string       `json:"name" validate:"required,max=255"`
	Date      *models.Date `json:"date" validate:"required"`
	Score     *float64     `json:"score" validate:"required,gte=0,lte=100"`
	Overview  string       `json:"overview" validate:"required"`
	Status    string       `json:"status" validate:"required,oneof='Released' 'Post Production' 'In Production'"`
	Budget    *float64     `json:"budget" validate:"required,gte=0"`
	Revenue   *float64     `json:"revenue" validate:"required,gte=0"`
	Country   string       `json:"country" validate:"required,len=3,alpha"`
	Genres    []string     `json:"genres" validate:"dive,required"`
	Actors    []string     `json:"actors" validate:"dive,required"`
	Languages []string     `json:"languages" validate:"dive,required"`
}

// Normalize applies the canonical casing to natural keys: country codes
// are upper-cased, entity names title-cased.
func (req *MovieCreateRequest) Normalize() {
	req.Country = strings.ToUpper(req.Country)
	for i, name := range req.Genres {
		req.Genres[i] = titleCaser.String(name)
	}
	for i, name := range req.Actors {
		req.Actors[i] = titleCaser.String(name)
	}
	for i, name := range req.Languages {
		req.Languages[i] = titleCaser.String(name)
	}
}

// Validate checks the payload against the field constraints. The list
// fields must be present; an explicitly empty list is acceptable.
func (req *MovieCreateRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(req); err != nil {
		return err
	}
	if req.Genres == nil || req.Actors == nil || req.Languages == nil {
		return fmt.Errorf("genres, actors and languages must be supplied")
	}
	return validateReleaseDate(*req.Date)
}

// MovieUpdateRequest is the partial-update payload; nil means the field
// was not supplied.
type MovieUpdateRequest struct {
	Name     *string      `json:"name" validate:"omitempty,max=255"`
	Date     *models.Date `json:"date"`
	Score    *float64     `json:"score" validate:"omitempty,gte=0,lte=100"`
	Overview *string      `json:"overview"`
	Status   *string      `json:"status" validate:"omitempty,oneof='Released' 'Post Production' 'In Production'"`
	Budget   *float64     `json:"budget" validate:"omitempty,gte=0"`
	Revenue  *float64     `json:"revenue" validate:"omitempty,gte=0"`
}

// Validate checks the supplied fields against the same constraints as
// creation.
func (req *MovieUpdateRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(req); err != nil {
		return err
	}
	if req.Date != nil {
		return validateReleaseDate(*req.Date)
	}
	return nil
}

// Updates returns the column values for the supplied fields only.
func (req *MovieUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.Overview != nil {
		updates["overview"] = *req.Overview
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Budget != nil {
		updates["budget"] = *req.Budget
	}
	if req.Revenue != nil {
		updates["revenue"] = *req.Revenue
	}
	return updates
}

// validateReleaseDate rejects dates more than one year in the future.
func validateReleaseDate(d models.Date) error {
	maxYear := time.Now().Year() + 1
	if d.Year() > maxYear {
		return fmt.Errorf("the year in 'date' cannot be greater than %d", maxYear)
	}
	return nil
}

// parsePagination extracts and bounds-checks the page and per_page query
// parameters, applying defaults when absent.
func parsePagination(r *http.Request) (page, perPage int, err error) {
	page = 1
	perPage = defaultPerPage

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter %q", raw)
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil || perPage < 1 || perPage > maxPerPage {
			return 0, 0, fmt.Errorf("invalid per_page parameter %q", raw)
		}
	}
	return page, perPage, nil
}

// newMovieDetail shapes a movie row with populated relationships into
// the detail response.
func newMovieDetail(movie *models.Movie) MovieDetailSchema {
	detail := MovieDetailSchema{
		ID:        movie.ID,
		Name:      movie.Name,
		Date:      movie.Date,
		Score:     movie.Score,
		Overview:  movie.Overview,
		Status:    movie.Status,
		Budget:    movie.Budget,
		Revenue:   movie.Revenue,
		Genres:    make([]GenreSchema, 0, len(movie.Genres)),
		Actors:    make([]ActorSchema, 0, len(movie.Actors)),
		Languages: make([]LanguageSchema, 0, len(movie.Languages)),
	}
	if movie.Country != nil {
		detail.Country = &CountrySchema{ID: movie.Country.ID, Code: movie.Country.Code, Name: movie.Country.Name}
	}
	for _, genre := range movie.Genres {
		detail.Genres = append(detail.Genres, GenreSchema{ID: genre.ID, Name: genre.Name})
	}
	for _, actor := range movie.Actors {
		detail.Actors = append(detail.Actors, ActorSchema{ID: actor.ID, Name: actor.Name})
	}
	for _, lang := range movie.Languages {
		detail.Languages = append(detail.Languages, LanguageSchema{ID: lang.ID, Name: lang.Name})
	}
	return detail
}

// newMovieListItem shapes a movie row into the condensed listing entry.
func newMovieListItem(movie models.Movie) MovieListItemSchema {
	return MovieListItemSchema{
		ID:       movie.ID,
		Name:     movie.Name,
		Date:     movie.Date,
		Score:    movie.Score,
		Overview: movie.Overview,
	}
}
