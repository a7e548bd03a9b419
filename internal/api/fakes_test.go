package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"wanderquest/internal/models/db_models"
	"wanderquest/internal/models/response_models"
	"wanderquest/internal/repositories"
	"wanderquest/internal/services"
	"wanderquest/pkg/utils"
)

type memUsers struct {
	mu    sync.Mutex
	users []*db_models.User
}

func (m *memUsers) Insert(_ context.Context, u *db_models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return utils.ErrEmailAlreadyExists
		}
	}
	u.ID, u.CreatedAt = uuid.New(), time.Now()
	if u.Preferences == nil {
		u.Preferences = datatypes.JSONMap{}
	}
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUsers) find(match func(*db_models.User) bool) *db_models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memUsers) FindById(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	return m.find(func(u *db_models.User) bool { return u.ID == id }), nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	return m.find(func(u *db_models.User) bool { return u.Email == email }), nil
}

func (m *memUsers) UpdatePreferences(_ context.Context, id uuid.UUID, prefs map[string]interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.Preferences = prefs
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.Password = hash
			return true, nil
		}
	}
	return false, nil
}

type memItineraries struct {
	mu    sync.Mutex
	items []*db_models.Itinerary
}

func (m *memItineraries) Create(_ context.Context, it *db_models.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it.ID, it.CreatedAt = uuid.New(), time.Now()
	it.UpdatedAt = it.CreatedAt
	cp := *it
	m.items = append(m.items, &cp)
	return nil
}

func (m *memItineraries) FindByIdAndUser(_ context.Context, id, userId uuid.UUID) (*db_models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id && it.UserID == userId {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memItineraries) ListByUser(_ context.Context, userId uuid.UUID, _ repositories.ListOptions) ([]db_models.Itinerary, error) {
	return m.filter(userId, func(*db_models.Itinerary) bool { return true }), nil
}

func (m *memItineraries) SearchByUser(_ context.Context, userId uuid.UUID, q string) ([]db_models.Itinerary, error) {
	return m.filter(userId, func(it *db_models.Itinerary) bool { return it.Title == q || it.Location == q }), nil
}

func (m *memItineraries) ListStartingFrom(_ context.Context, userId uuid.UUID, from time.Time) ([]db_models.Itinerary, error) {
	return m.filter(userId, func(it *db_models.Itinerary) bool { return !it.StartDate.Before(from) }), nil
}

func (m *memItineraries) filter(userId uuid.UUID, keep func(*db_models.Itinerary) bool) []db_models.Itinerary {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db_models.Itinerary
	for _, it := range m.items {
		if it.UserID == userId && keep(it) {
			out = append(out, *it)
		}
	}
	return out
}

func (m *memItineraries) ReplaceByIdAndUser(_ context.Context, id, userId uuid.UUID, in *db_models.Itinerary) (*db_models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id && it.UserID == userId {
			it.Title, it.StartDate, it.EndDate = in.Title, in.StartDate, in.EndDate
			it.Budget, it.Location, it.Activities = in.Budget, in.Location, in.Activities
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memItineraries) DeleteByIdAndUser(_ context.Context, id, userId uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id && it.UserID == userId {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubPlaces struct{}

func (stubPlaces) Search(context.Context, string, string) ([]byte, error) {
	return []byte(`{"status":"OK","results":[{"name":"Louvre"}]}`), nil
}

func (stubPlaces) Nearby(context.Context, string, string, int) ([]byte, error) {
	return []byte(`{"status":"OK","results":[]}`), nil
}

func (stubPlaces) Category(context.Context, string, string) ([]byte, error) {
	return []byte(`{"status":"OK","results":[]}`), nil
}

func (stubPlaces) Details(context.Context, string) ([]byte, error) {
	return nil, utils.ErrLocationNotFound
}

func (stubPlaces) Photo(context.Context, string) (*services.PlacePhotoData, error) {
	return &services.PlacePhotoData{ContentType: "image/jpeg", Body: []byte{0xff, 0xd8, 0xff}}, nil
}

func (stubPlaces) FindPlaces(_ context.Context, location, _ string, limit int) ([]response_models.PlaceSummary, error) {
	if location == "Atlantis" {
		return nil, utils.ErrUpstream
	}
	out := make([]response_models.PlaceSummary, limit)
	for i := range out {
		out[i] = response_models.PlaceSummary{Name: "sight", Photos: []response_models.PlacePhoto{}}
	}
	return out, nil
}

type stubWeather struct{}

func (stubWeather) Forecast(_ context.Context, location string) ([]byte, error) {
	if location == "Atlantis" {
		return nil, utils.ErrLocationNotFound
	}
	if location == "Down" {
		return nil, utils.ErrUpstream
	}
	return []byte(`{"cod":"200","list":[]}`), nil
}

func (stubWeather) DailyForecast(_ context.Context, _ string, days int) ([]response_models.ForecastDay, error) {
	return make([]response_models.ForecastDay, days), nil
}
