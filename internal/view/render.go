package view

import (
	"fmt"
	"io"
	"text/template"

	"github.com/prohmpiriya/charity-events/internal/client"
)

// Card is the list rendering of an event
type Card struct {
	ID           int64
	Name         string
	Category     string
	Date         string
	Time         string
	Place        string
	Organization string
	Description  string
	Price        string
	ImageURL     string
}

// NewCard builds the card for e
func NewCard(e client.Event) Card {
	price := FreeLabel
	if !e.IsFree {
		price = FormatCurrency(e.TicketPrice)
	}
	image := e.ImageURL
	if image == "" {
		image = CardPlaceholderImage
	}
	return Card{
		ID:           e.EventID,
		Name:         e.EventName,
		Category:     e.CategoryName,
		Date:         FormatDate(e.EventDate),
		Time:         FormatTime(e.EventTime),
		Place:        Place(e.City, e.Location),
		Organization: e.OrganizationName,
		Description:  Truncate(e.Description, DescriptionLimit),
		Price:        price,
		ImageURL:     image,
	}
}

// Detail is the full rendering of one event
type Detail struct {
	Card
	Description         string
	DetailedDescription string
	Address             string
	Participants        string
	Status              string
	Progress            Progress

	OrganizationDescription string
	ContactEmail            string
	ContactPhone            string
	Website                 string
	WebsiteURL              string
}

// NewDetail builds the detail view for e
func NewDetail(e client.Event) Detail {
	card := NewCard(e)
	if e.IsFree {
		card.Price = FreeEventLabel
	}
	if e.ImageURL == "" {
		card.ImageURL = DetailPlaceholderImage
	}

	detailed := e.DetailedDescription
	if detailed == "" {
		detailed = e.Description
	}
	address := e.Address
	if address == "" {
		address = e.Location
	}

	return Detail{
		Card:                    card,
		Description:             e.Description,
		DetailedDescription:     detailed,
		Address:                 address,
		Participants:            ParticipantsText(e.CurrentParticipants, e.MaxParticipants),
		Status:                  StatusLabel(e.Status),
		Progress:                FundraisingProgress(e.CurrentFunds, e.FundraisingGoal),
		OrganizationDescription: e.OrganizationDescription,
		ContactEmail:            e.ContactEmail,
		ContactPhone:            e.ContactPhone,
		Website:                 e.Website,
		WebsiteURL:              WebsiteURL(e.Website),
	}
}

var templates = template.Must(template.New("view").Parse(`
{{- define "card" -}}
[{{ .ID }}] {{ .Name }}{{ with .Category }} ({{ . }}){{ end }}
    Date:         {{ .Date }}
    Place:        {{ .Place }}
    Organization: {{ .Organization }}
    Price:        {{ .Price }}
{{- with .Description }}
    {{ . }}
{{- end }}
{{ end -}}

{{- define "cards" -}}
{{- range . }}{{ template "card" . }}
{{ else }}No events found.
{{ end -}}
{{- end -}}

{{- define "search" -}}
{{ .Count }}
{{- with .Filters }}
{{ . }}
{{- end }}

{{ template "cards" .Cards }}
{{- end -}}

{{- define "detail" -}}
{{ .Name }}
Status:       {{ .Status }}
Category:     {{ .Category }}
Date:         {{ .Date }}
Time:         {{ .Time }}
Place:        {{ .Place }}
Address:      {{ .Address }}
Price:        {{ .Price }}
Participants: {{ .Participants }}
Image:        {{ .ImageURL }}

{{ .DetailedDescription }}

Fundraising:  {{ .Progress.Raised }} of {{ .Progress.Goal }} ({{ .Progress.PercentText }} Complete, {{ .Progress.Tier }})

Organizer:    {{ .Organization }}
{{- with .OrganizationDescription }}
              {{ . }}
{{- end }}
{{- with .ContactEmail }}
Email:        {{ . }}
{{- end }}
{{- with .ContactPhone }}
Phone:        {{ . }}
{{- end }}
{{- with .WebsiteURL }}
Website:      {{ . }}
{{- end }}
{{ end -}}
`))

// RenderEvents writes one card per event
func RenderEvents(w io.Writer, events []client.Event) error {
	cards := make([]Card, 0, len(events))
	for _, e := range events {
		cards = append(cards, NewCard(e))
	}
	return render(w, "cards", cards)
}

// RenderSearch writes the result count, the applied filters and the matching cards
func RenderSearch(w io.Writer, result *client.SearchResult) error {
	cards := make([]Card, 0, len(result.Events))
	for _, e := range result.Events {
		cards = append(cards, NewCard(e))
	}
	return render(w, "search", struct {
		Count   string
		Filters string
		Cards   []Card
	}{
		Count:   ResultCount(result.Count),
		Filters: FilterSummary(result.Filters),
		Cards:   cards,
	})
}

// RenderDetail writes the detail view of e
func RenderDetail(w io.Writer, e *client.Event) error {
	return render(w, "detail", NewDetail(*e))
}

// RenderCategories writes one line per category
func RenderCategories(w io.Writer, categories []client.Category) error {
	for _, c := range categories {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", c.CategoryID, c.CategoryName); err != nil {
			return err
		}
	}
	return nil
}

// RenderCities writes one line per city
func RenderCities(w io.Writer, cities []string) error {
	for _, city := range cities {
		if _, err := fmt.Fprintln(w, city); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, name string, data interface{}) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
