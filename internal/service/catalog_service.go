package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prohmpiriya/charity-events/internal/domain"
	"github.com/prohmpiriya/charity-events/internal/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
)

// CatalogService defines the read operations of the events catalog
type CatalogService interface {
	// ListEvents lists publicly listable events, earliest first
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	// SearchEvents lists listable events narrowed by filter
	SearchEvents(ctx context.Context, filter domain.SearchFilter) ([]*domain.Event, error)
	// GetEvent retrieves one event with full detail, listable or not
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	// ListCategories lists all categories by name
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	// ListCities lists the distinct cities that have non-suspended events
	ListCities(ctx context.Context) ([]string, error)
}

// Option configures the catalog service
type Option func(*catalogService)

// WithClock overrides the time source used to decide what "today" is
func WithClock(now func() time.Time) Option {
	return func(s *catalogService) { s.now = now }
}

// WithLocation sets the time zone in which "today" is evaluated
func WithLocation(loc *time.Location) Option {
	return func(s *catalogService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// catalogService implements CatalogService
type catalogService struct {
	eventRepo    repository.EventRepository
	categoryRepo repository.CategoryRepository
	now          func() time.Time
	loc          *time.Location
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(eventRepo repository.EventRepository, categoryRepo repository.CategoryRepository, opts ...Option) CatalogService {
	s := &catalogService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
		loc:          time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *catalogService) today() time.Time {
	return s.now().In(s.loc)
}

// ListEvents lists publicly listable events
func (s *catalogService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListEligible(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// SearchEvents lists listable events narrowed by filter
func (s *catalogService) SearchEvents(ctx context.Context, filter domain.SearchFilter) ([]*domain.Event, error) {
	events, err := s.eventRepo.Search(ctx, s.today(), filter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}

// GetEvent retrieves one event. An id that is not an in-range integer cannot match any row,
// so it is reported as not found without querying the store.
func (s *catalogService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	eventID, ok := domain.ParseID(id)
	if !ok {
		return nil, ErrEventNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ListCategories lists all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListCities lists the distinct cities of non-suspended events
func (s *catalogService) ListCities(ctx context.Context) ([]string, error) {
	cities, err := s.eventRepo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}
