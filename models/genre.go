package models

// Genre is a shared movie genre, linked to movies via the
// 'movie_genres' join table.
type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`

	Movies []Movie `gorm:"many2many:movie_genres" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Genre) TableName() string {
	return "genres"
}
