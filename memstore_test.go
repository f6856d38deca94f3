package main

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"lg/stride-nutrition-api/internal/analytics"
)

// memStore is an in-memory store for handler tests.
type memStore struct {
	mu       sync.Mutex
	nextID   int
	items    []calorieLogItem
	settings map[int]calorieLogUserSettings
	users    []user
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, settings: map[int]calorieLogUserSettings{}}
}

func (m *memStore) addItem(userID int, date, kind string, calories int, proteinG float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	p := proteinG
	m.items = append(m.items, calorieLogItem{
		ID: m.nextID, UserID: userID, Date: DateOnly{d}, ItemName: kind + " item",
		Type: kind, Calories: calories, ProteinG: &p,
	})
	m.nextID++
}

func (m *memStore) ListItems(_ context.Context, userID int, from, to time.Time) ([]calorieLogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lo, hi := analytics.DayOf(from), analytics.DayOf(to)
	var out []calorieLogItem
	for _, it := range m.items {
		d := analytics.DayOf(it.Date.Time)
		if it.UserID == userID && !d.Before(lo.Time) && !d.After(hi.Time) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out, nil
}

func (m *memStore) ListAllItems(ctx context.Context, userID int) ([]calorieLogItem, error) {
	return m.ListItems(ctx, userID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (m *memStore) EarliestItemDate(ctx context.Context, userID int) (*string, error) {
	items, _ := m.ListAllItems(ctx, userID)
	if len(items) == 0 {
		return nil, nil
	}
	s := items[0].Date.Format("2006-01-02")
	return &s, nil
}

func (m *memStore) CreateItem(_ context.Context, userID int, body createCalorieLogItemRequest) (calorieLogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return calorieLogItem{}, err
	}
	item := calorieLogItem{
		ID: m.nextID, UserID: userID, Date: DateOnly{d}, ItemName: body.ItemName,
		Type: body.Type, Qty: body.Qty, Uom: body.Uom, Calories: body.Calories,
		ProteinG: body.ProteinG, CarbsG: body.CarbsG, FatG: body.FatG,
	}
	m.nextID++
	m.items = append(m.items, item)
	return item, nil
}

func (m *memStore) find(userID int, id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return -1, errNotFound
	}
	for i, it := range m.items {
		if it.ID == n && it.UserID == userID {
			return i, nil
		}
	}
	return -1, errNotFound
}

func (m *memStore) UpdateItem(_ context.Context, userID int, id string, body updateCalorieLogItemRequest) (calorieLogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.find(userID, id)
	if err != nil {
		return calorieLogItem{}, err
	}
	it := &m.items[i]
	if body.Date != nil {
		d, err := time.Parse("2006-01-02", *body.Date)
		if err != nil {
			return calorieLogItem{}, err
		}
		it.Date = DateOnly{d}
	}
	if body.ItemName != nil {
		it.ItemName = *body.ItemName
	}
	if body.Type != nil {
		it.Type = *body.Type
	}
	if body.Calories != nil {
		it.Calories = *body.Calories
	}
	if body.ProteinG != nil {
		it.ProteinG = body.ProteinG
	}
	return *it, nil
}

func (m *memStore) DeleteItem(_ context.Context, userID int, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.find(userID, id)
	if err != nil {
		return err
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *memStore) GetUserSettings(_ context.Context, userID int) (calorieLogUserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[userID]
	if !ok {
		return calorieLogUserSettings{}, errNotFound
	}
	return s, nil
}

func (m *memStore) PatchUserSettings(_ context.Context, userID int, body patchUserSettingsRequest) (calorieLogUserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[userID]
	if !ok {
		return calorieLogUserSettings{}, errNotFound
	}
	n := 0
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
			n++
		}
	}
	setDate := func(dst **DateOnly, v *string) {
		if v != nil {
			d, _ := time.Parse("2006-01-02", *v)
			*dst = &DateOnly{d}
			n++
		}
	}
	setInt(&s.CalorieBudget, body.CalorieBudget)
	setInt(&s.ProteinTargetG, body.ProteinTargetG)
	setInt(&s.CarbsTargetG, body.CarbsTargetG)
	setInt(&s.FatTargetG, body.FatTargetG)
	setDate(&s.DateOfBirth, body.DateOfBirth)
	setDate(&s.TargetDate, body.TargetDate)
	for _, f := range []struct {
		dst **string
		v   *string
	}{{&s.Sex, body.Sex}, {&s.ActivityLevel, body.ActivityLevel}, {&s.MacroRatio, body.MacroRatio}} {
		if f.v != nil {
			*f.dst = f.v
			n++
		}
	}
	for _, f := range []struct {
		dst **float64
		v   *float64
	}{{&s.HeightCM, body.HeightCM}, {&s.WeightLBS, body.WeightLBS}, {&s.TargetWeightLBS, body.TargetWeightLBS}} {
		if f.v != nil {
			*f.dst = f.v
			n++
		}
	}
	if body.Units != nil {
		s.Units = *body.Units
		n++
	}
	if body.BudgetAuto != nil {
		s.BudgetAuto = *body.BudgetAuto
		n++
	}
	if body.SetupComplete != nil {
		s.SetupComplete = *body.SetupComplete
		n++
	}
	if n == 0 {
		return calorieLogUserSettings{}, errNoFields
	}
	m.settings[userID] = s
	return s, nil
}

func (m *memStore) SetCalorieBudget(_ context.Context, userID, budget int) (calorieLogUserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[userID]
	if !ok {
		return calorieLogUserSettings{}, errNotFound
	}
	s.CalorieBudget = budget
	m.settings[userID] = s
	return s, nil
}

func (m *memStore) UserByUsername(_ context.Context, username string) (user, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user{}, errNotFound
}

func (m *memStore) UserIDForToken(_ context.Context, token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.AuthToken == token {
			return u.ID, nil
		}
	}
	return 0, errNotFound
}
