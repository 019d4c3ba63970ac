package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedSearch is a bookmarked filter selection. Query is always the canonical
// encoding, so the same selection maps to the same row.
type SavedSearch struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string         `json:"user_id" gorm:"not null;uniqueIndex:idx_saved_searches_user_query"`
	Name      string         `json:"name" gorm:"not null"`
	Query     string         `json:"query" gorm:"not null;uniqueIndex:idx_saved_searches_user_query"`
	// Filters is the decoded selection as {key: [values]}, queryable by facet.
	Filters   datatypes.JSON `json:"filters" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (s *SavedSearch) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (SavedSearch) TableName() string {
	return "saved_searches"
}

type SavedSearchRequest struct {
	Name  string `json:"name" binding:"required,max=120" example:"Black sneakers"`
	Query string `json:"query" example:"color=black&size=M"`
}

type SavedSearchResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Query     string              `json:"query"`
	Href      string              `json:"href"`
	Filters   map[string][]string `json:"filters"`
	CreatedAt time.Time           `json:"created_at"`
}
