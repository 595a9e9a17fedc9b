package specification

import "gorm.io/gorm"

// AlumniContentQuery filters alumni records by free text in their content.
// Using ILIKE for Postgres (case insensitive).
type AlumniContentQuery struct {
	Query string
}

func (s AlumniContentQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("content ILIKE ?", pattern)
}
