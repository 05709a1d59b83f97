package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/prohmpiriya/charity-events/internal/domain"
)

// Sample event ids, see NewSampleCatalog
const (
	SampleFunRunID       int64 = 1
	SampleGalaID         int64 = 2
	SampleAuctionID      int64 = 3
	SamplePastWalkID     int64 = 4
	SampleConcertID      int64 = 5
	SampleFoodDriveID    int64 = 6
	SamplePicnicID       int64 = 7
	SampleCategoryHealth int64 = 2
)

// NewSampleCatalog returns a catalog seeded with events around today:
// listable events in Springfield, Boston and Portland, plus a suspended event
// in Salem, a past event and a completed event.
func NewSampleCatalog(today time.Time) *MemoryCatalog {
	y, mo, d := today.Date()
	day := func(offset int) time.Time {
		return time.Date(y, mo, d+offset, 0, 0, 0, 0, time.UTC)
	}
	clock := func(s string) *string { return &s }
	capacity := func(n int) *int { return &n }

	m := NewMemoryCatalog()

	m.AddCategory(domain.Category{ID: 1, Name: "Arts & Culture", Description: "Concerts, galas and exhibitions"})
	m.AddCategory(domain.Category{ID: SampleCategoryHealth, Name: "Health & Wellness", Description: "Runs, walks and health drives"})
	m.AddCategory(domain.Category{ID: 3, Name: "Community", Description: "Local community support"})

	m.AddOrganization(domain.Organization{
		ID:           1,
		Name:         "Hope Foundation",
		Description:  "Supporting families in need",
		ContactEmail: "info@hopefoundation.org",
		ContactPhone: "555-0100",
		Website:      "hopefoundation.org",
	})
	m.AddOrganization(domain.Organization{
		ID:           2,
		Name:         "Harbor Trust",
		Description:  "Coastal community arts",
		ContactEmail: "hello@harbortrust.org",
		Website:      "https://harbortrust.org",
	})

	m.AddEvent(domain.Event{
		ID:                  SampleFunRunID,
		Name:                "Spring Fun Run",
		Description:         "A 5k run through the park to raise funds for the children's ward.",
		DetailedDescription: "Join runners of every level for a morning 5k loop.",
		Date:                day(12),
		Time:                clock("09:00:00"),
		Location:            "Riverside Park",
		City:                "Springfield",
		Address:             "1 River Rd",
		TicketPrice:         decimal.RequireFromString("25.00"),
		Status:              domain.EventStatusUpcoming,
		FundraisingGoal:     decimal.RequireFromString("10000.00"),
		CurrentFunds:        decimal.RequireFromString("8000.00"),
		MaxParticipants:     capacity(200),
		CurrentParticipants: 150,
		CategoryID:          SampleCategoryHealth,
		OrganizationID:      1,
	})
	m.AddEvent(domain.Event{
		ID:              SampleGalaID,
		Name:            "Harbor Gala",
		Description:     "An evening of music by the water.",
		Date:            day(13),
		Location:        "Harbor Hall",
		City:            "Boston",
		IsFree:          true,
		Status:          domain.EventStatusUpcoming,
		FundraisingGoal: decimal.RequireFromString("100.00"),
		CurrentFunds:    decimal.RequireFromString("150.00"),
		CategoryID:      1,
		OrganizationID:  2,
	})
	m.AddEvent(domain.Event{
		ID:             SampleAuctionID,
		Name:           "Silent Auction",
		Date:           day(5),
		City:           "Salem",
		Status:         domain.EventStatusUpcoming,
		IsSuspended:    true,
		CategoryID:     1,
		OrganizationID: 2,
	})
	m.AddEvent(domain.Event{
		ID:             SamplePastWalkID,
		Name:           "Autumn Walk",
		Date:           day(-1),
		City:           "Springfield",
		Status:         domain.EventStatusUpcoming,
		CategoryID:     SampleCategoryHealth,
		OrganizationID: 1,
	})
	m.AddEvent(domain.Event{
		ID:             SampleConcertID,
		Name:           "Benefit Concert",
		Date:           day(20),
		City:           "Boston",
		Status:         domain.EventStatusCompleted,
		CategoryID:     1,
		OrganizationID: 2,
	})
	m.AddEvent(domain.Event{
		ID:              SampleFoodDriveID,
		Name:            "Food Drive",
		Description:     "Collecting canned goods all day.",
		Date:            day(0),
		Time:            clock("08:30:00"),
		City:            "Springfield",
		Status:          domain.EventStatusOngoing,
		FundraisingGoal: decimal.Zero,
		CurrentFunds:    decimal.RequireFromString("40.00"),
		CategoryID:      3,
		OrganizationID:  1,
	})
	m.AddEvent(domain.Event{
		ID:             SamplePicnicID,
		Name:           "Community Picnic",
		Date:           day(12),
		City:           "Portland",
		TicketPrice:    decimal.RequireFromString("5.50"),
		Status:         domain.EventStatusUpcoming,
		CategoryID:     3,
		OrganizationID: 1,
	})

	return m
}
