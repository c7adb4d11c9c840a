package models

// Language is a shared spoken language, linked to movies via the
// 'movie_languages' join table.
type Language struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`

	Movies []Movie `gorm:"many2many:movie_languages" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Language) TableName() string {
	return "languages"
}
