package models

// Country is a production country identified by its ISO 3166-1 alpha-3
// code. Many movies may reference the same country row.
type Country struct {
	ID   uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string  `gorm:"size:3;not null;unique" json:"code"`
	Name *string `gorm:"" json:"name"` // Nullable

	Movies []Movie `gorm:"foreignKey:CountryID" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Country) TableName() string {
	return "countries"
}
