package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	dbm "wanderquest/internal/models/db_models"
)

var itineraryColumns = []string{
	"id", "created_at", "updated_at", "user_id", "title", "start_date", "end_date",
	"budget", "location", "activities", "weather_data",
}

func itineraryRow(rows *sqlmock.Rows, id, userId uuid.UUID, title string) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(id.String(), now, now, userId.String(), title,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		"1500.00", "Paris, France", []byte(`[{"day":1,"name":"Louvre","time":"10:00"}]`), []byte(`{}`))
}

func TestItineraryRepository_FindByIdAndUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)
	id, userId := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "itineraries" WHERE id = $1 AND user_id = $2`)).
		WillReturnRows(itineraryRow(sqlmock.NewRows(itineraryColumns), id, userId, "Paris"))

	it, err := repo.FindByIdAndUser(context.Background(), id, userId)
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, id, it.ID)
	assert.Equal(t, "Paris", it.Title)
	assert.True(t, decimal.RequireFromString("1500").Equal(it.Budget))
	require.Len(t, it.Activities, 1)
	assert.Equal(t, "Louvre", it.Activities[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_FindByIdAndUserMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "itineraries" WHERE id = $1 AND user_id = $2`)).
		WillReturnRows(sqlmock.NewRows(itineraryColumns))

	it, err := repo.FindByIdAndUser(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestItineraryRepository_FindByIdAndUserError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByIdAndUser(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
}

func TestItineraryRepository_ListByUserSorted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)
	userId := uuid.New()

	rows := sqlmock.NewRows(itineraryColumns)
	itineraryRow(rows, uuid.New(), userId, "B")
	itineraryRow(rows, uuid.New(), userId, "A")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "itineraries" WHERE user_id = $1 ORDER BY "start_date" DESC`)).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), userId, ListOptions{Sort: "startDate", Desc: true})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_ListByUserUnknownSort(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	_, err := repo.ListByUser(context.Background(), uuid.New(), ListOptions{Sort: "color"})
	assert.ErrorIs(t, err, ErrUnknownSort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_SearchEscapesPattern(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND (title ILIKE $2 OR location ILIKE $3) ORDER BY start_date ASC`)).
		WithArgs(sqlmock.AnyArg(), `%100\%%`, `%100\%%`).
		WillReturnRows(sqlmock.NewRows(itineraryColumns))

	list, err := repo.SearchByUser(context.Background(), uuid.New(), " 100% ")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "itineraries"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	it := &dbm.Itinerary{
		UserID:      uuid.New(),
		Title:       "Paris",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Budget:      decimal.RequireFromString("1500"),
		Location:    "Paris, France",
		Activities:  datatypes.JSONSlice[dbm.Activity]{},
		WeatherData: datatypes.JSON(`{}`),
	}
	require.NoError(t, repo.Create(context.Background(), it))
	assert.NotEqual(t, uuid.Nil, it.ID)
	assert.False(t, it.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_ReplaceByIdAndUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)
	id, userId := uuid.New(), uuid.New()

	mock.ExpectQuery(`UPDATE "itineraries" SET .* WHERE id = \$\d+ AND user_id = \$\d+ RETURNING \*`).
		WillReturnRows(itineraryRow(sqlmock.NewRows(itineraryColumns), id, userId, "Paris again"))

	out, err := repo.ReplaceByIdAndUser(context.Background(), id, userId, &dbm.Itinerary{Title: "Paris again"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Paris again", out.Title)
	assert.Equal(t, id, out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_ReplaceByIdAndUserNotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(`UPDATE "itineraries" SET .* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows(itineraryColumns))

	out, err := repo.ReplaceByIdAndUser(context.Background(), uuid.New(), uuid.New(), &dbm.Itinerary{Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestItineraryRepository_DeleteByIdAndUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItineraryRepository(db)
	id, userId := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "itineraries" WHERE id = $1 AND user_id = $2`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "itineraries" WHERE id = $1 AND user_id = $2`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByIdAndUser(context.Background(), id, userId)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByIdAndUser(context.Background(), id, userId)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
