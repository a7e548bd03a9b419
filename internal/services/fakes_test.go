package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"wanderquest/internal/models/db_models"
	"wanderquest/internal/models/response_models"
	"wanderquest/internal/repositories"
	"wanderquest/pkg/utils"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db_models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*db_models.User{}}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return utils.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	if user.Preferences == nil {
		user.Preferences = datatypes.JSONMap{}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePreferences(_ context.Context, id uuid.UUID, prefs map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.Preferences = prefs
	return true, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.Password = hash
	return true, nil
}

type fakeItineraryRepo struct {
	mu    sync.Mutex
	items []*db_models.Itinerary
	err   error
}

func (f *fakeItineraryRepo) Create(_ context.Context, it *db_models.Itinerary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	it.ID = uuid.New()
	it.CreatedAt = time.Now()
	it.UpdatedAt = it.CreatedAt
	cp := *it
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeItineraryRepo) FindByIdAndUser(_ context.Context, id, userId uuid.UUID) (*db_models.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id && it.UserID == userId {
			cp := *it
			return &cp, nil
		}
	}
	return nil, f.err
}

func (f *fakeItineraryRepo) owned(userId uuid.UUID, keep func(*db_models.Itinerary) bool) []db_models.Itinerary {
	var out []db_models.Itinerary
	for _, it := range f.items {
		if it.UserID == userId && keep(it) {
			out = append(out, *it)
		}
	}
	return out
}

func (f *fakeItineraryRepo) ListByUser(_ context.Context, userId uuid.UUID, opts repositories.ListOptions) ([]db_models.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := f.owned(userId, func(*db_models.Itinerary) bool { return true })
	switch opts.Sort {
	case "":
	case "startDate":
		sort.SliceStable(out, func(i, j int) bool {
			if opts.Desc {
				return out[i].StartDate.After(out[j].StartDate)
			}
			return out[i].StartDate.Before(out[j].StartDate)
		})
	case "createdAt", "budget", "title":
	default:
		return nil, repositories.ErrUnknownSort
	}
	return out, nil
}

func (f *fakeItineraryRepo) SearchByUser(_ context.Context, userId uuid.UUID, q string) ([]db_models.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q = strings.ToLower(q)
	return f.owned(userId, func(it *db_models.Itinerary) bool {
		return strings.Contains(strings.ToLower(it.Title), q) || strings.Contains(strings.ToLower(it.Location), q)
	}), nil
}

func (f *fakeItineraryRepo) ListStartingFrom(_ context.Context, userId uuid.UUID, from time.Time) ([]db_models.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owned(userId, func(it *db_models.Itinerary) bool { return !it.StartDate.Before(from) }), nil
}

func (f *fakeItineraryRepo) ReplaceByIdAndUser(_ context.Context, id, userId uuid.UUID, in *db_models.Itinerary) (*db_models.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id && it.UserID == userId {
			it.Title, it.StartDate, it.EndDate = in.Title, in.StartDate, in.EndDate
			it.Budget, it.Location, it.Activities = in.Budget, in.Location, in.Activities
			it.UpdatedAt = time.Now()
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItineraryRepo) DeleteByIdAndUser(_ context.Context, id, userId uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items {
		if it.ID == id && it.UserID == userId {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakePlaces fails for every location listed in failFor.
type fakePlaces struct {
	mu      sync.Mutex
	failFor map[string]bool
	calls   []string
}

func (f *fakePlaces) Search(context.Context, string, string) ([]byte, error) {
	return []byte(`{"status":"OK","results":[]}`), nil
}

func (f *fakePlaces) Nearby(context.Context, string, string, int) ([]byte, error) {
	return []byte(`{"status":"OK","results":[]}`), nil
}

func (f *fakePlaces) Category(context.Context, string, string) ([]byte, error) {
	return []byte(`{"status":"OK","results":[]}`), nil
}

func (f *fakePlaces) Details(context.Context, string) ([]byte, error) {
	return []byte(`{"status":"OK","result":{}}`), nil
}

func (f *fakePlaces) Photo(context.Context, string) (*PlacePhotoData, error) {
	return &PlacePhotoData{ContentType: "image/jpeg", Body: []byte{0xff, 0xd8}}, nil
}

func (f *fakePlaces) FindPlaces(_ context.Context, location, query string, limit int) ([]response_models.PlaceSummary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, location)
	f.mu.Unlock()
	if f.failFor[location] {
		return nil, errors.Join(utils.ErrUpstream, errors.New("boom"))
	}
	out := make([]response_models.PlaceSummary, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, response_models.PlaceSummary{Name: location + " sight", Photos: []response_models.PlacePhoto{}})
	}
	return out, nil
}

type fakeWeather struct {
	err error
}

func (f *fakeWeather) Forecast(context.Context, string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`{"list":[]}`), nil
}

func (f *fakeWeather) DailyForecast(_ context.Context, _ string, days int) ([]response_models.ForecastDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]response_models.ForecastDay, days)
	for i := range out {
		out[i] = response_models.ForecastDay{Date: time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC).Format(utils.DateLayout), Temperature: 20}
	}
	return out, nil
}
