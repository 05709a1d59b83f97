package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/prohmpiriya/charity-events/internal/domain"
)

// Query is a SQL statement with its positional arguments
type Query struct {
	SQL  string
	Args []interface{}
}

// eventSummaryColumns are selected for list and search rows
const eventSummaryColumns = `ce.event_id, ce.event_name, COALESCE(ce.description, '') AS description,
	ce.event_date, to_char(ce.event_time, 'HH24:MI:SS') AS event_time,
	COALESCE(ce.location, '') AS location, ce.city,
	ce.ticket_price, ce.is_free, COALESCE(ce.image_url, '') AS image_url, ce.status,
	ce.category_id, ce.organization_id,
	cat.category_name, org.organization_name`

// eventDetailColumns are selected for a single event, joined with full category and organization detail
const eventDetailColumns = `ce.event_id, ce.event_name, COALESCE(ce.description, '') AS description,
	COALESCE(ce.detailed_description, '') AS detailed_description,
	ce.event_date, to_char(ce.event_time, 'HH24:MI:SS') AS event_time,
	COALESCE(ce.location, '') AS location, ce.city, COALESCE(ce.address, '') AS address,
	ce.ticket_price, ce.is_free, COALESCE(ce.image_url, '') AS image_url, ce.status, ce.is_suspended,
	ce.fundraising_goal, ce.current_funds, ce.max_participants, ce.current_participants,
	ce.category_id, ce.organization_id,
	cat.category_name, COALESCE(cat.description, '') AS category_description,
	org.organization_name, COALESCE(org.description, '') AS organization_description,
	COALESCE(org.contact_email, '') AS contact_email, COALESCE(org.contact_phone, '') AS contact_phone,
	COALESCE(org.website, '') AS website`

const eventJoins = `FROM charity_events ce
	JOIN event_categories cat ON ce.category_id = cat.category_id
	JOIN charity_organizations org ON ce.organization_id = org.organization_id`

// Ties on date keep a stable order across calls
const eventOrder = `ORDER BY ce.event_date ASC, ce.event_id ASC`

// predicates accumulates AND-joined clauses, numbering placeholders as arguments are bound
type predicates struct {
	clauses []string
	args    []interface{}
}

// bind appends a clause whose single %d verb becomes the next placeholder index
func (p *predicates) bind(clause string, arg interface{}) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, fmt.Sprintf(clause, len(p.args)))
}

// literal appends a clause that takes no argument
func (p *predicates) literal(clause string) {
	p.clauses = append(p.clauses, clause)
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.clauses, "\n\tAND ")
}

// eligible holds the listing conditions: not suspended, still open and not in the past
func eligible(today time.Time) *predicates {
	p := &predicates{}
	p.literal("ce.is_suspended = FALSE")
	p.bind("ce.status = ANY($%d)", domain.ListableStatuses)
	p.bind("ce.event_date >= $%d", civilDate(today))
	return p
}

// ListEligibleEventsQuery selects every publicly listable event, earliest first
func ListEligibleEventsQuery(today time.Time) Query {
	return SearchEventsQuery(today, domain.SearchFilter{})
}

// SearchEventsQuery narrows the listable events by each filter field that is set.
// A date or category that does not parse adds a FALSE clause so the query yields no rows.
func SearchEventsQuery(today time.Time, filter domain.SearchFilter) Query {
	p := eligible(today)

	if filter.Date != "" {
		if d, ok := filter.ParsedDate(); ok {
			p.bind("ce.event_date = $%d", d)
		} else {
			p.literal("FALSE")
		}
	}

	if filter.City != "" {
		p.bind("ce.city ILIKE $%d", "%"+escapeLike(filter.City)+"%")
	}

	if filter.Category != "" {
		if id, ok := filter.ParsedCategory(); ok {
			p.bind("ce.category_id = $%d", id)
		} else {
			p.literal("FALSE")
		}
	}

	return Query{
		SQL:  fmt.Sprintf("SELECT %s\n%s\n%s\n%s", eventSummaryColumns, eventJoins, p.where(), eventOrder),
		Args: p.args,
	}
}

// EventByIDQuery selects one event regardless of its listing eligibility
func EventByIDQuery(id int64) Query {
	p := &predicates{}
	p.bind("ce.event_id = $%d", id)
	return Query{
		SQL:  fmt.Sprintf("SELECT %s\n%s\n%s", eventDetailColumns, eventJoins, p.where()),
		Args: p.args,
	}
}

// ListCategoriesQuery selects every category by name
func ListCategoriesQuery() Query {
	return Query{
		SQL: `SELECT category_id, category_name, COALESCE(description, '') AS description
	FROM event_categories
	ORDER BY category_name ASC`,
	}
}

// ListCitiesQuery selects each city that has at least one non-suspended event
func ListCitiesQuery() Query {
	return Query{
		SQL: `SELECT DISTINCT city
	FROM charity_events
	WHERE is_suspended = FALSE AND city IS NOT NULL
	ORDER BY city ASC`,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
