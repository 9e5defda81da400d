package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type activityRepository struct {
	db *DB
}

// NewActivityRepository создает репозиторий чтения активностей поездок.
// Таблицей владеет trip-backend; здесь только SELECT.
func NewActivityRepository(db *DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// activityRow - строка таблицы activities; координаты - nullable decimal,
// читаем их строками и парсим на доменном уровне
type activityRow struct {
	ID          string    `db:"id"`
	TripID      string    `db:"trip_id"`
	StartTime   time.Time `db:"start_time"`
	LocationLat *string   `db:"location_lat"`
	LocationLng *string   `db:"location_lng"`
}

// GetByTripID возвращает все активности поездки
func (r *activityRepository) GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityRecord, error) {
	query := `
		SELECT id, trip_id, start_time, location_lat::text, location_lng::text
		FROM activities
		WHERE trip_id = $1
	`

	var rows []activityRow
	if err := r.db.SelectContext(ctx, &rows, query, tripID); err != nil {
		r.db.logger.Error("Failed to query trip activities",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("query trip activities: %w", err)
	}

	records := make([]domain.ActivityRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}

// GetByTripIDs возвращает активности нескольких поездок одним запросом,
// сгруппированные по trip_id
func (r *activityRepository) GetByTripIDs(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.ActivityRecord, error) {
	if len(tripIDs) == 0 {
		return map[uuid.UUID][]domain.ActivityRecord{}, nil
	}

	ids := make([]string, len(tripIDs))
	for i, id := range tripIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, trip_id, start_time, location_lat::text, location_lng::text
		FROM activities
		WHERE trip_id = ANY($1)
	`

	var rows []activityRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		r.db.logger.Error("Failed to query activities batch",
			zap.Int("trip_count", len(tripIDs)),
			zap.Error(err))
		return nil, fmt.Errorf("query activities batch: %w", err)
	}

	grouped := make(map[uuid.UUID][]domain.ActivityRecord, len(tripIDs))
	for _, row := range rows {
		tripID, err := uuid.Parse(row.TripID)
		if err != nil {
			continue
		}
		grouped[tripID] = append(grouped[tripID], row.toRecord())
	}

	// Поездка без активностей - это пустой срез, а не отсутствующий ключ
	for _, id := range tripIDs {
		if _, ok := grouped[id]; !ok {
			grouped[id] = []domain.ActivityRecord{}
		}
	}
	return grouped, nil
}

func (row activityRow) toRecord() domain.ActivityRecord {
	return domain.ActivityRecord{
		ID:          row.ID,
		StartTime:   row.StartTime,
		LocationLat: row.LocationLat,
		LocationLng: row.LocationLng,
	}
}
