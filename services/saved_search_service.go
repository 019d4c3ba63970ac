package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSavedSearchNotFound = errors.New("saved search not found")
	ErrEmptySearch         = errors.New("saved search has no filters")
)

// SavedSearchService stores filter selections per customer.
type SavedSearchService struct {
	db    *gorm.DB
	codec *querystate.Codec
}

func NewSavedSearchService(db *gorm.DB, codec *querystate.Codec) *SavedSearchService {
	return &SavedSearchService{db: db, codec: codec}
}

// CanonicalSearchQuery reduces a raw query to the form stored in saved_searches:
// decoded, stripped of pagination and re-encoded.
func CanonicalSearchQuery(codec *querystate.Codec, raw string) (string, error) {
	state, err := searchState(codec, raw)
	if err != nil {
		return "", err
	}
	return codec.Encode(state), nil
}

func searchState(codec *querystate.Codec, raw string) (querystate.State, error) {
	state := codec.Decode(raw).Without(querystate.KeyPage)
	if state.IsEmpty() {
		return querystate.State{}, ErrEmptySearch
	}
	return state, nil
}

// Save creates the search or renames the existing row with the same query.
// The boolean reports whether a new row was created.
func (s *SavedSearchService) Save(ctx context.Context, userID, name, rawQuery string) (*models.SavedSearch, bool, error) {
	state, err := searchState(s.codec, rawQuery)
	if err != nil {
		return nil, false, err
	}
	query := s.codec.Encode(state)
	filters, err := json.Marshal(state.Map())
	if err != nil {
		return nil, false, fmt.Errorf("encode filters: %w", err)
	}

	var search models.SavedSearch
	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND query = ?", userID, query).Limit(1).Find(&search)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			search = models.SavedSearch{UserID: userID, Name: name, Query: query, Filters: datatypes.JSON(filters)}
			created = true
			return tx.Create(&search).Error
		}
		if search.Name == name {
			return nil
		}
		return tx.Model(&search).Update("name", name).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("save search: %w", err)
	}
	return &search, created, nil
}

// List returns the customer's searches, newest first. A non-empty facet keeps
// only the searches that filter on it.
func (s *SavedSearchService) List(ctx context.Context, userID, facet string) ([]models.SavedSearch, error) {
	searches := make([]models.SavedSearch, 0)
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if facet != "" {
		q = q.Where(datatypes.JSONQuery("filters").HasKey(facet))
	}
	if err := q.Order("created_at DESC").Find(&searches).Error; err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	return searches, nil
}

// Delete removes one of the customer's searches.
func (s *SavedSearchService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedSearch{})
	if res.Error != nil {
		return fmt.Errorf("delete search: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSavedSearchNotFound
	}
	return nil
}
