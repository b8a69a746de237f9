package specification

import "gorm.io/gorm"

// Latest orders newest first and keeps one row.
type Latest struct {
	Field string
}

func (s Latest) Apply(db *gorm.DB) *gorm.DB {
	field := s.Field
	if field == "" {
		field = "created_at"
	}
	return db.Order(field + " DESC").Limit(1)
}
