package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/camden-git/theaterbackend/models"
	"github.com/camden-git/theaterbackend/repository"
)

type MovieHandler struct {
	Movies   repository.MovieRepositoryInterface
	Validate *validator.Validate
}

// Routes mounts the movie endpoints on a fresh chi router
func (mh *MovieHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", mh.ListMovies)
	r.Post("/", mh.CreateMovie)
	r.Route("/{movie_id}", func(r chi.Router) {
		r.Get("/", mh.GetMovie)
		r.Patch("/", mh.UpdateMovie)
		r.Delete("/", mh.DeleteMovie)
	})
	return r
}

// ListMovies returns one page of the catalog ordered by descending ID
func (mh *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidInput)
		return
	}

	movies, totalItems, err := mh.Movies.List(page, perPage)
	if err != nil {
		log.Printf("Error listing movies (page %d, per_page %d): %v", page, perPage, err)
		writeError(w, http.StatusInternalServerError, MsgServerError)
		return
	}
	if len(movies) == 0 {
		writeError(w, http.StatusNotFound, MsgNoMoviesFound)
		return
	}

	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	resp := MovieListResponseSchema{
		Movies:     make([]MovieListItemSchema, 0, len(movies)),
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
	for _, movie := range movies {
		resp.Movies = append(resp.Movies, newMovieListItem(movie))
	}
	if page > 1 {
		prev := fmt.Sprintf("/movies/?page=%d&per_page=%d", page-1, perPage)
		resp.PrevPage = &prev
	}
	if int64(page)*int64(perPage) < totalItems {
		next := fmt.Sprintf("/movies/?page=%d&per_page=%d", page+1, perPage)
		resp.NextPage = &next
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateMovie validates the payload, resolves the related entities by
// natural key (creating missing ones) and inserts the movie
func (mh *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req MovieCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidInput)
		return
	}

	req.Normalize()
	if err := req.Validate(mh.Validate); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidInput)
		return
	}

	movie := models.Movie{
		Name:     req.Name,
		Date:     *req.Date,
		Score:    *req.Score,
		Overview: req.Overview,
		Status:   req.Status,
		Budget:   *req.Budget,
		Revenue:  *req.Revenue,
	}
	links := repository.EntityLinks{
		Country:   req.Country,
		Genres:    req.Genres,
		Actors:    req.Actors,
		Languages: req.Languages,
	}

	if err := mh.Movies.Create(&movie, links); err != nil {
		if errors.Is(err, repository.ErrDuplicateMovie) {
			detail := fmt.Sprintf("A movie with the name '%s' and release date '%s' already exists.", req.Name, req.Date)
			writeError(w, http.StatusConflict, detail)
		} else {
			log.Printf("Error creating movie '%s': %v", req.Name, err)
			writeError(w, http.StatusInternalServerError, MsgServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, newMovieDetail(&movie))
}

// GetMovie returns the full detail shape for a single movie
func (mh *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	movie, err := mh.Movies.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, MsgMovieNotFound)
		} else {
			log.Printf("Error getting movie %d: %v", movieID, err)
			writeError(w, http.StatusInternalServerError, MsgServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, newMovieDetail(movie))
}

// UpdateMovie applies only the supplied fields to an existing movie
func (mh *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	var req MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidInput)
		return
	}
	if err := req.Validate(mh.Validate); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidInput)
		return
	}

	if err := mh.Movies.Update(movieID, req.Updates()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, MsgMovieNotFound)
		} else {
			log.Printf("Error updating movie %d: %v", movieID, err)
			writeError(w, http.StatusInternalServerError, MsgServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "Movie updated successfully."})
}

// DeleteMovie removes a movie and its join-table rows
func (mh *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	if err := mh.Movies.Delete(movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, MsgMovieNotFound)
		} else {
			log.Printf("Error deleting movie %d: %v", movieID, err)
			writeError(w, http.StatusInternalServerError, MsgServerError)
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func parseMovieID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "movie_id")
	movieID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidInput)
		return 0, false
	}
	return uint(movieID), true
}
