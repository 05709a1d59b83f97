package view

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/prohmpiriya/charity-events/internal/client"
)

const (
	// DescriptionLimit is the number of runes a card description is cut to
	DescriptionLimit = 120

	TimeNotSpecified = "Not specified"
	FreeLabel        = "Free"
	FreeEventLabel   = "Free Event"

	CardPlaceholderImage   = "https://via.placeholder.com/400x250?text=Charity+Event"
	DetailPlaceholderImage = "https://via.placeholder.com/800x400?text=Charity+Event"
)

var statusLabels = map[string]string{
	"upcoming":  "Upcoming",
	"ongoing":   "Ongoing",
	"completed": "Completed",
}

var (
	hundred       = decimal.NewFromInt(100)
	highThreshold = decimal.NewFromInt(75)
	midThreshold  = decimal.NewFromInt(50)
)

// FormatDate renders a YYYY-MM-DD date as "June 1, 2025". Unparseable input is returned as is.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// FormatTime renders HH:MM:SS as HH:MM
func FormatTime(clock *string) string {
	if clock == nil || *clock == "" {
		return TimeNotSpecified
	}
	parts := strings.SplitN(*clock, ":", 3)
	if len(parts) < 2 {
		return *clock
	}
	return parts[0] + ":" + parts[1]
}

// FormatCurrency renders an amount as $12.50
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Truncate cuts s to at most limit runes, marking the cut with "..."
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	if limit <= 3 {
		return string(runes[:limit])
	}
	return strings.TrimRight(string(runes[:limit-3]), " ") + "..."
}

// StatusLabel maps a status code to its display label
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// WebsiteURL adds a scheme to bare host names
func WebsiteURL(website string) string {
	if website == "" || strings.HasPrefix(website, "http") {
		return website
	}
	return "http://" + website
}

// ParticipantsText renders "150 / 200", or "150 participants" when there is no cap
func ParticipantsText(current int, maxParticipants *int) string {
	if maxParticipants == nil || *maxParticipants == 0 {
		return fmt.Sprintf("%d participants", current)
	}
	return fmt.Sprintf("%d / %d", current, *maxParticipants)
}

// Place renders "city, location"
func Place(city, location string) string {
	switch {
	case location == "":
		return city
	case city == "":
		return location
	}
	return city + ", " + location
}

// Progress is the fundraising state of an event
type Progress struct {
	Raised  string
	Goal    string
	Percent decimal.Decimal
	Tier    string
	Color   string
}

// PercentText renders the percentage with one decimal, e.g. "80.0%"
func (p Progress) PercentText() string {
	return p.Percent.StringFixed(1) + "%"
}

// FundraisingProgress computes how much of goal has been raised, clamped to 100%.
// A zero goal is 0%.
func FundraisingProgress(current, goal decimal.Decimal) Progress {
	percent := decimal.Zero
	if goal.IsPositive() {
		percent = decimal.Min(current.Div(goal).Mul(hundred), hundred)
	}
	if percent.IsNegative() {
		percent = decimal.Zero
	}

	p := Progress{
		Raised:  FormatCurrency(current),
		Goal:    FormatCurrency(goal),
		Percent: percent,
	}
	switch {
	case percent.GreaterThanOrEqual(highThreshold):
		p.Tier, p.Color = "high", "#28a745"
	case percent.GreaterThanOrEqual(midThreshold):
		p.Tier, p.Color = "medium", "#ffc107"
	default:
		p.Tier, p.Color = "low", "#007bff"
	}
	return p
}

// ResultCount renders "Found n event(s)"
func ResultCount(n int) string {
	if n == 1 {
		return "Found 1 event"
	}
	return fmt.Sprintf("Found %d events", n)
}

// FilterSummary renders the applied filters, or "" when none were applied
func FilterSummary(f client.AppliedFilters) string {
	var parts []string
	if f.Date != nil && *f.Date != "" {
		parts = append(parts, "Date: "+FormatDate(*f.Date))
	}
	if f.City != nil && *f.City != "" {
		parts = append(parts, "City: "+*f.City)
	}
	if f.Category != nil && *f.Category != "" {
		parts = append(parts, "Category ID: "+*f.Category)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filters: " + strings.Join(parts, ", ")
}

// Action names what the user was doing when a request failed
type Action int

const (
	ActionList Action = iota
	ActionSearch
	ActionDetail
	ActionCatalog
)

// ErrorMessage maps a client failure to a message fit for the user
func ErrorMessage(action Action, err error) string {
	if action == ActionDetail && errors.Is(err, client.ErrNotFound) {
		return "Event information not found"
	}
	switch action {
	case ActionSearch:
		return "Error searching events. Please check your network connection or try again later."
	case ActionDetail:
		return "Error loading event details. Please try again later."
	case ActionCatalog:
		return "Error loading search options. Please try again later."
	default:
		return "Error loading events. Please try again later. If the problem persists, please contact the administrator."
	}
}
