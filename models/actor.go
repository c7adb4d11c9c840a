package models

// Actor is a shared cast member, linked to movies via the
// 'movie_actors' join table.
type Actor struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;unique" json:"name"`

	Movies []Movie `gorm:"many2many:movie_actors" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Actor) TableName() string {
	return "actors"
}
