package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prohmpiriya/charity-events/internal/domain"
	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// PostgresEventRepository implements EventRepository using PostgreSQL.
// Every method is a single round trip on the pool.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// ListEligible retrieves the events listable on the given day
func (r *PostgresEventRepository) ListEligible(ctx context.Context, today time.Time) (events []*domain.Event, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "list_events")
	defer func() {
		span.SetAttributes(telemetry.ResultCountAttr(len(events)))
		telemetry.EndSpan(span, err)
	}()

	return r.querySummaries(ctx, ListEligibleEventsQuery(today))
}

// Search retrieves the listable events matching filter
func (r *PostgresEventRepository) Search(ctx context.Context, today time.Time, filter domain.SearchFilter) (events []*domain.Event, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "search_events")
	defer func() {
		span.SetAttributes(telemetry.ResultCountAttr(len(events)))
		telemetry.EndSpan(span, err)
	}()

	return r.querySummaries(ctx, SearchEventsQuery(today, filter))
}

// GetByID retrieves an event by ID, ignoring listing eligibility
func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (event *domain.Event, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "get_event", telemetry.EventIDAttr(id))
	defer func() { telemetry.EndSpan(span, err) }()

	q := EventByIDQuery(id)
	event = &domain.Event{}
	err = r.pool.QueryRow(ctx, q.SQL, q.Args...).Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.DetailedDescription,
		&event.Date,
		&event.Time,
		&event.Location,
		&event.City,
		&event.Address,
		&event.TicketPrice,
		&event.IsFree,
		&event.ImageURL,
		&event.Status,
		&event.IsSuspended,
		&event.FundraisingGoal,
		&event.CurrentFunds,
		&event.MaxParticipants,
		&event.CurrentParticipants,
		&event.CategoryID,
		&event.OrganizationID,
		&event.CategoryName,
		&event.CategoryDescription,
		&event.OrganizationName,
		&event.OrganizationDescription,
		&event.ContactEmail,
		&event.ContactPhone,
		&event.Website,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// ListCities retrieves the distinct cities of non-suspended events
func (r *PostgresEventRepository) ListCities(ctx context.Context) (cities []string, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "list_cities")
	defer func() { telemetry.EndSpan(span, err) }()

	q := ListCitiesQuery()
	rows, err := r.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}

	cities, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *PostgresEventRepository) querySummaries(ctx context.Context, q Query) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event := &domain.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Description,
			&event.Date,
			&event.Time,
			&event.Location,
			&event.City,
			&event.TicketPrice,
			&event.IsFree,
			&event.ImageURL,
			&event.Status,
			&event.CategoryID,
			&event.OrganizationID,
			&event.CategoryName,
			&event.OrganizationName,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
