package repository

import (
	"context"
	"fmt"
	"strings"

	"event-assistance-api/internal/model"
	apperrors "event-assistance-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, filters model.EventFilters) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	CountByMonth(ctx context.Context) ([]*model.MonthCount, error)
	ListWithAttendees(ctx context.Context) ([]*model.EventWithAttendees, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (name, location, date, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, location, date, type, description, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		event.Name, event.Location, event.Date, event.Type, event.Description,
	).Scan(
		&event.ID,
		&event.Name,
		&event.Location,
		&event.Date,
		&event.Type,
		&event.Description,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filters model.EventFilters) ([]*model.Event, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+filters.Name+"%")
		argPos++
	}

	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argPos))
		args = append(args, filters.Type)
		argPos++
	}

	if filters.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, filters.StartDate)
		argPos++
	}

	if filters.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, filters.EndDate)
		argPos++
	}

	if filters.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argPos))
		args = append(args, "%"+filters.Location+"%")
		argPos++
	}

	query := `
		SELECT id, name, location, date, type, description, created_at
		FROM events
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Location,
			&event.Date,
			&event.Type,
			&event.Description,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT id, name, location, date, type, description, created_at
		FROM events
		WHERE id = $1
	`

	var event model.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Location,
		&event.Date,
		&event.Type,
		&event.Description,
		&event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM events
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

func (r *EventRepositoryImpl) CountByMonth(ctx context.Context) ([]*model.MonthCount, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM') AS month, COUNT(*) AS events_count
		FROM events
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]*model.MonthCount, 0)
	for rows.Next() {
		var count model.MonthCount
		if err := rows.Scan(&count.Month, &count.EventsCount); err != nil {
			return nil, err
		}
		counts = append(counts, &count)
	}
	return counts, rows.Err()
}

func (r *EventRepositoryImpl) ListWithAttendees(ctx context.Context) ([]*model.EventWithAttendees, error) {
	query := `
		SELECT e.id, e.name, e.location, e.date, e.type, e.description, e.created_at,
		       a.id, a.signature_path, a.photo_path,
		       u.id, u.full_name, u.identification
		FROM events e
		LEFT JOIN assistance a ON a.event_id = e.id
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY e.date DESC, e.id DESC, a.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.EventWithAttendees, 0)
	byID := make(map[int]*model.EventWithAttendees)

	for rows.Next() {
		var event model.Event
		var assistanceID, userID *int
		var signaturePath, photoPath, fullName, identification *string

		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Location,
			&event.Date,
			&event.Type,
			&event.Description,
			&event.CreatedAt,
			&assistanceID,
			&signaturePath,
			&photoPath,
			&userID,
			&fullName,
			&identification,
		)
		if err != nil {
			return nil, err
		}

		entry, ok := byID[event.ID]
		if !ok {
			entry = &model.EventWithAttendees{
				Event:     event,
				Attendees: make([]model.EventAttendee, 0),
			}
			byID[event.ID] = entry
			events = append(events, entry)
		}

		// Rows without a matching assistance record still yield the event
		// entry, just with no attendee appended.
		if assistanceID == nil || userID == nil {
			continue
		}

		attendee := model.EventAttendee{
			UserID:        *userID,
			AssistanceID:  *assistanceID,
			SignaturePath: signaturePath,
			PhotoPath:     photoPath,
		}
		if fullName != nil {
			attendee.FullName = *fullName
		}
		if identification != nil {
			attendee.Identification = *identification
		}
		entry.Attendees = append(entry.Attendees, attendee)
	}
	return events, rows.Err()
}
