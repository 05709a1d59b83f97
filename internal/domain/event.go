package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used by the store and the search filter
const DateLayout = "2006-01-02"

// EventStatus constants
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// ListableStatuses are the statuses an event may have and still appear in public listings
var ListableStatuses = []string{EventStatusUpcoming, EventStatusOngoing}

// Event is a charity event joined with its category and organization.
// Summary rows (list and search) only populate the names of the category and organization.
type Event struct {
	ID                  int64
	Name                string
	Description         string
	DetailedDescription string
	Date                time.Time
	Time                *string // HH:MM:SS, nil when the organizer has not set one
	Location            string
	City                string
	Address             string
	TicketPrice         decimal.Decimal
	IsFree              bool
	ImageURL            string
	Status              string
	IsSuspended         bool
	FundraisingGoal     decimal.Decimal
	CurrentFunds        decimal.Decimal
	MaxParticipants     *int
	CurrentParticipants int
	CategoryID          int64
	OrganizationID      int64

	CategoryName            string
	CategoryDescription     string
	OrganizationName        string
	OrganizationDescription string
	ContactEmail            string
	ContactPhone            string
	Website                 string
}

// IsListable reports whether the event may appear in public listings on the given day
func (e *Event) IsListable(today time.Time) bool {
	if e.IsSuspended {
		return false
	}
	if e.Status != EventStatusUpcoming && e.Status != EventStatusOngoing {
		return false
	}
	return !civilDate(e.Date).Before(civilDate(today))
}

// Category groups events by cause
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Organization runs events
type Organization struct {
	ID           int64
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Website      string
}

// SearchFilter holds the optional search criteria; empty fields are not applied
type SearchFilter struct {
	Date     string
	City     string
	Category string
}

// ParsedDate returns the filter date, or ok=false when it is not a calendar date
func (f SearchFilter) ParsedDate() (time.Time, bool) {
	d, err := time.Parse(DateLayout, f.Date)
	return d, err == nil
}

// ParsedCategory returns the filter category id, or ok=false when it is not a valid id
func (f SearchFilter) ParsedCategory() (int64, bool) {
	return ParseID(f.Category)
}

// ParseID parses a row id. Ids are INTEGER columns, so values outside the int32 range
// cannot match any row and are rejected like any other malformed id.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	return id, err == nil
}

// Matches applies the filter to an event in memory with the same semantics as the SQL query:
// exact calendar date, case-insensitive city substring and exact category id.
// A malformed date or category matches nothing.
func (f SearchFilter) Matches(e *Event) bool {
	if f.Date != "" {
		d, ok := f.ParsedDate()
		if !ok || !civilDate(e.Date).Equal(d) {
			return false
		}
	}
	if f.City != "" && !strings.Contains(strings.ToLower(e.City), strings.ToLower(f.City)) {
		return false
	}
	if f.Category != "" {
		id, ok := f.ParsedCategory()
		if !ok || e.CategoryID != id {
			return false
		}
	}
	return true
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
