package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "wanderquest/internal/models/db_models"
)

// ListOptions orders a list query. Empty Sort keeps the store's natural order.
type ListOptions struct {
	Sort string
	Desc bool
}

// sortColumns maps API sort keys to columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"budget":    "budget",
	"title":     "title",
}

var ErrUnknownSort = errors.New("unknown sort key")

// ItineraryRepository scopes every lookup by owner in the same statement,
// so an id owned by someone else behaves exactly like a missing id.
type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *dbm.Itinerary) error
	FindByIdAndUser(ctx context.Context, id, userId uuid.UUID) (*dbm.Itinerary, error)
	ListByUser(ctx context.Context, userId uuid.UUID, opts ListOptions) ([]dbm.Itinerary, error)
	SearchByUser(ctx context.Context, userId uuid.UUID, query string) ([]dbm.Itinerary, error)
	ListStartingFrom(ctx context.Context, userId uuid.UUID, from time.Time) ([]dbm.Itinerary, error)
	ReplaceByIdAndUser(ctx context.Context, id, userId uuid.UUID, itinerary *dbm.Itinerary) (*dbm.Itinerary, error)
	DeleteByIdAndUser(ctx context.Context, id, userId uuid.UUID) (bool, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *dbm.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) FindByIdAndUser(ctx context.Context, id, userId uuid.UUID) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		First(&itinerary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *itineraryRepository) ListByUser(ctx context.Context, userId uuid.UUID, opts ListOptions) ([]dbm.Itinerary, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userId)

	if opts.Sort != "" {
		col, ok := sortColumns[opts.Sort]
		if !ok {
			return nil, ErrUnknownSort
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: opts.Desc})
	}

	var itineraries []dbm.Itinerary
	if err := q.Find(&itineraries).Error; err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) SearchByUser(ctx context.Context, userId uuid.UUID, query string) ([]dbm.Itinerary, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (title ILIKE ? OR location ILIKE ?)", userId, pattern, pattern).
		Order("start_date ASC").
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) ListStartingFrom(ctx context.Context, userId uuid.UUID, from time.Time) ([]dbm.Itinerary, error) {
	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date >= ?", userId, from).
		Order("start_date ASC").
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

// ReplaceByIdAndUser overwrites every editable column, activities included,
// and returns the stored row. A nil result means no owned row matched.
func (r *itineraryRepository) ReplaceByIdAndUser(ctx context.Context, id, userId uuid.UUID, itinerary *dbm.Itinerary) (*dbm.Itinerary, error) {
	var out dbm.Itinerary
	res := r.db.WithContext(ctx).
		Model(&out).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, userId).
		Updates(map[string]interface{}{
			"title":      itinerary.Title,
			"start_date": itinerary.StartDate,
			"end_date":   itinerary.EndDate,
			"budget":     itinerary.Budget,
			"location":   itinerary.Location,
			"activities": itinerary.Activities,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *itineraryRepository) DeleteByIdAndUser(ctx context.Context, id, userId uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&dbm.Itinerary{})
	return res.RowsAffected > 0, res.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
