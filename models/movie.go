package models

// Movie status values accepted by the API.
const (
	StatusReleased       = "Released"
	StatusPostProduction = "Post Production"
	StatusInProduction   = "In Production"
)

// Movie represents a catalog entry in the database using GORM.
// It corresponds to the 'movies' table.
type Movie struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"size:255;not null;uniqueIndex:idx_movies_name_date" json:"name"`
	Date      Date    `gorm:"not null;uniqueIndex:idx_movies_name_date" json:"date"`
	Score     float64 `gorm:"not null" json:"score"`
	Overview  string  `gorm:"type:text" json:"overview"`
	Status    string  `gorm:"not null" json:"status"`
	Budget    float64 `gorm:"not null;default:0" json:"budget"`
	Revenue   float64 `gorm:"not null;default:0" json:"revenue"`
	CountryID *uint   `gorm:"index" json:"-"` // Nullable

	Country   *Country   `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Genres    []Genre    `gorm:"many2many:movie_genres" json:"genres,omitempty"`
	Actors    []Actor    `gorm:"many2many:movie_actors" json:"actors,omitempty"`
	Languages []Language `gorm:"many2many:movie_languages" json:"languages,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Movie) TableName() string {
	return "movies"
}

// IsValidStatus reports whether s is one of the accepted status values.
func IsValidStatus(s string) bool {
	switch s {
	case StatusReleased, StatusPostProduction, StatusInProduction:
		return true
	}
	return false
}
