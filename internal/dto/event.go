package dto

import (
	"strings"

	"github.com/prohmpiriya/charity-events/internal/domain"
)

// SearchEventsRequest binds the optional query parameters of GET /api/events/search.
// Other query keys are ignored.
type SearchEventsRequest struct {
	Date     string `form:"date"`
	City     string `form:"city"`
	Category string `form:"category"`
}

// ToFilter converts the request to a domain filter; blank values are treated as absent
func (r *SearchEventsRequest) ToFilter() domain.SearchFilter {
	return domain.SearchFilter{
		Date:     strings.TrimSpace(r.Date),
		City:     strings.TrimSpace(r.City),
		Category: strings.TrimSpace(r.Category),
	}
}

// EventSummaryResponse is one row of a list or search result
type EventSummaryResponse struct {
	EventID          int64   `json:"event_id"`
	EventName        string  `json:"event_name"`
	Description      string  `json:"description"`
	EventDate        string  `json:"event_date"`
	EventTime        *string `json:"event_time"`
	Location         string  `json:"location"`
	City             string  `json:"city"`
	TicketPrice      string  `json:"ticket_price"`
	IsFree           bool    `json:"is_free"`
	ImageURL         string  `json:"image_url"`
	Status           string  `json:"status"`
	CategoryID       int64   `json:"category_id"`
	OrganizationID   int64   `json:"organization_id"`
	CategoryName     string  `json:"category_name"`
	OrganizationName string  `json:"organization_name"`
}

// EventDetailResponse is a full event with its category and organization
type EventDetailResponse struct {
	EventID             int64   `json:"event_id"`
	EventName           string  `json:"event_name"`
	Description         string  `json:"description"`
	DetailedDescription string  `json:"detailed_description"`
	EventDate           string  `json:"event_date"`
	EventTime           *string `json:"event_time"`
	Location            string  `json:"location"`
	City                string  `json:"city"`
	Address             string  `json:"address"`
	TicketPrice         string  `json:"ticket_price"`
	IsFree              bool    `json:"is_free"`
	ImageURL            string  `json:"image_url"`
	Status              string  `json:"status"`
	IsSuspended         bool    `json:"is_suspended"`
	FundraisingGoal     string  `json:"fundraising_goal"`
	CurrentFunds        string  `json:"current_funds"`
	MaxParticipants     *int    `json:"max_participants"`
	CurrentParticipants int     `json:"current_participants"`
	CategoryID          int64   `json:"category_id"`
	OrganizationID      int64   `json:"organization_id"`

	CategoryName            string `json:"category_name"`
	CategoryDescription     string `json:"category_description"`
	OrganizationName        string `json:"organization_name"`
	OrganizationDescription string `json:"organization_description"`
	ContactEmail            string `json:"contact_email"`
	ContactPhone            string `json:"contact_phone"`
	Website                 string `json:"website"`
}

// CategoryResponse is one event category
type CategoryResponse struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}

// ToEventSummaryResponse converts a domain event to a list row
func ToEventSummaryResponse(e *domain.Event) *EventSummaryResponse {
	return &EventSummaryResponse{
		EventID:          e.ID,
		EventName:        e.Name,
		Description:      e.Description,
		EventDate:        e.Date.Format(domain.DateLayout),
		EventTime:        e.Time,
		Location:         e.Location,
		City:             e.City,
		TicketPrice:      e.TicketPrice.StringFixed(2),
		IsFree:           e.IsFree,
		ImageURL:         e.ImageURL,
		Status:           e.Status,
		CategoryID:       e.CategoryID,
		OrganizationID:   e.OrganizationID,
		CategoryName:     e.CategoryName,
		OrganizationName: e.OrganizationName,
	}
}

// ToEventSummaryResponses converts a result set, never returning nil
func ToEventSummaryResponses(events []*domain.Event) []*EventSummaryResponse {
	out := make([]*EventSummaryResponse, len(events))
	for i, e := range events {
		out[i] = ToEventSummaryResponse(e)
	}
	return out
}

// ToEventDetailResponse converts a domain event to the detail view
func ToEventDetailResponse(e *domain.Event) *EventDetailResponse {
	return &EventDetailResponse{
		EventID:                 e.ID,
		EventName:               e.Name,
		Description:             e.Description,
		DetailedDescription:     e.DetailedDescription,
		EventDate:               e.Date.Format(domain.DateLayout),
		EventTime:               e.Time,
		Location:                e.Location,
		City:                    e.City,
		Address:                 e.Address,
		TicketPrice:             e.TicketPrice.StringFixed(2),
		IsFree:                  e.IsFree,
		ImageURL:                e.ImageURL,
		Status:                  e.Status,
		IsSuspended:             e.IsSuspended,
		FundraisingGoal:         e.FundraisingGoal.StringFixed(2),
		CurrentFunds:            e.CurrentFunds.StringFixed(2),
		MaxParticipants:         e.MaxParticipants,
		CurrentParticipants:     e.CurrentParticipants,
		CategoryID:              e.CategoryID,
		OrganizationID:          e.OrganizationID,
		CategoryName:            e.CategoryName,
		CategoryDescription:     e.CategoryDescription,
		OrganizationName:        e.OrganizationName,
		OrganizationDescription: e.OrganizationDescription,
		ContactEmail:            e.ContactEmail,
		ContactPhone:            e.ContactPhone,
		Website:                 e.Website,
	}
}

// ToCategoryResponses converts categories, never returning nil
func ToCategoryResponses(categories []*domain.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = &CategoryResponse{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Description:  c.Description,
		}
	}
	return out
}
