package repository

import (
	"context"
	"time"

	"github.com/prohmpiriya/charity-events/internal/domain"
)

// EventRepository defines read access to charity events
type EventRepository interface {
	// ListEligible retrieves the events listable on the given day, earliest first
	ListEligible(ctx context.Context, today time.Time) ([]*domain.Event, error)
	// Search retrieves the listable events matching filter, earliest first
	Search(ctx context.Context, today time.Time, filter domain.SearchFilter) ([]*domain.Event, error)
	// GetByID retrieves one event with full detail, or nil when it does not exist
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	// ListCities retrieves the distinct cities of non-suspended events
	ListCities(ctx context.Context) ([]string, error)
}

// CategoryRepository defines read access to event categories
type CategoryRepository interface {
	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*domain.Category, error)
}
