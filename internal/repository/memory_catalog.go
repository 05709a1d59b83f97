package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prohmpiriya/charity-events/internal/domain"
)

// MemoryCatalog is an in-memory implementation of EventRepository and CategoryRepository for testing.
// It evaluates the same eligibility and filter rules as the SQL queries.
type MemoryCatalog struct {
	mu            sync.RWMutex
	events        map[int64]*domain.Event
	categories    map[int64]*domain.Category
	organizations map[int64]*domain.Organization
	err           error
	queries       int
}

// NewMemoryCatalog creates an empty in-memory catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		events:        make(map[int64]*domain.Event),
		categories:    make(map[int64]*domain.Category),
		organizations: make(map[int64]*domain.Organization),
	}
}

// AddCategory stores a category
func (m *MemoryCatalog) AddCategory(c domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = &c
}

// AddOrganization stores an organization
func (m *MemoryCatalog) AddOrganization(o domain.Organization) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.organizations[o.ID] = &o
}

// AddEvent stores an event; its category and organization should be added first
func (m *MemoryCatalog) AddEvent(e domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e.ID] = &e
}

// FailWith makes every subsequent query return err; nil restores normal operation
func (m *MemoryCatalog) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Queries returns how many queries have been issued
func (m *MemoryCatalog) Queries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queries
}

// begin counts a query and returns the configured failure, if any
func (m *MemoryCatalog) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++
	return m.err
}

// ListEligible retrieves the events listable on the given day
func (m *MemoryCatalog) ListEligible(ctx context.Context, today time.Time) ([]*domain.Event, error) {
	return m.Search(ctx, today, domain.SearchFilter{})
}

// Search retrieves the listable events matching filter
func (m *MemoryCatalog) Search(ctx context.Context, today time.Time, filter domain.SearchFilter) ([]*domain.Event, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*domain.Event, 0)
	for _, e := range m.events {
		if e.IsListable(today) && filter.Matches(e) {
			events = append(events, m.summary(e))
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// GetByID retrieves an event by ID, ignoring listing eligibility
func (m *MemoryCatalog) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return m.detail(e), nil
}

// ListCities retrieves the distinct cities of non-suspended events
func (m *MemoryCatalog) ListCities(ctx context.Context) ([]string, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for _, e := range m.events {
		if e.IsSuspended {
			continue
		}
		if _, ok := seen[e.City]; ok {
			continue
		}
		seen[e.City] = struct{}{}
		cities = append(cities, e.City)
	}
	sort.Strings(cities)
	return cities, nil
}

// List retrieves all categories ordered by name
func (m *MemoryCatalog) List(ctx context.Context) ([]*domain.Category, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		copied := *c
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.Compare(categories[i].Name, categories[j].Name) < 0
	})
	return categories, nil
}

// summary copies the columns selected for list rows
func (m *MemoryCatalog) summary(e *domain.Event) *domain.Event {
	s := &domain.Event{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		Date:           e.Date,
		Time:           e.Time,
		Location:       e.Location,
		City:           e.City,
		TicketPrice:    e.TicketPrice,
		IsFree:         e.IsFree,
		ImageURL:       e.ImageURL,
		Status:         e.Status,
		CategoryID:     e.CategoryID,
		OrganizationID: e.OrganizationID,
	}
	if c, ok := m.categories[e.CategoryID]; ok {
		s.CategoryName = c.Name
	}
	if o, ok := m.organizations[e.OrganizationID]; ok {
		s.OrganizationName = o.Name
	}
	return s
}

// detail copies the event and joins full category and organization detail
func (m *MemoryCatalog) detail(e *domain.Event) *domain.Event {
	d := *e
	if c, ok := m.categories[e.CategoryID]; ok {
		d.CategoryName = c.Name
		d.CategoryDescription = c.Description
	}
	if o, ok := m.organizations[e.OrganizationID]; ok {
		d.OrganizationName = o.Name
		d.OrganizationDescription = o.Description
		d.ContactEmail = o.ContactEmail
		d.ContactPhone = o.ContactPhone
		d.Website = o.Website
	}
	return &d
}
