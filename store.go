package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"lg/stride-nutrition-api/internal/analytics"
)

var (
	errNotFound = errors.New("not found")
	errNoFields = errors.New("no fields to update")
)

// store is everything the handlers read and write. pgStore is the Postgres
// implementation; tests swap in an in-memory one.
type store interface {
	ListItems(ctx context.Context, userID int, from, to time.Time) ([]calorieLogItem, error)
	ListAllItems(ctx context.Context, userID int) ([]calorieLogItem, error)
	EarliestItemDate(ctx context.Context, userID int) (*string, error)
	CreateItem(ctx context.Context, userID int, body createCalorieLogItemRequest) (calorieLogItem, error)
	UpdateItem(ctx context.Context, userID int, id string, body updateCalorieLogItemRequest) (calorieLogItem, error)
	DeleteItem(ctx context.Context, userID int, id string) error

	GetUserSettings(ctx context.Context, userID int) (calorieLogUserSettings, error)
	PatchUserSettings(ctx context.Context, userID int, body patchUserSettingsRequest) (calorieLogUserSettings, error)
	SetCalorieBudget(ctx context.Context, userID, budget int) (calorieLogUserSettings, error)

	UserByUsername(ctx context.Context, username string) (user, error)
	UserIDForToken(ctx context.Context, token string) (int, error)
}

// nutritionEntries converts logged food items into analytics entries. Exercise
// items are burn, not intake, and are left out.
func nutritionEntries(items []calorieLogItem) []analytics.Entry {
	entries := make([]analytics.Entry, 0, len(items))
	for _, item := range items {
		if item.Type == "exercise" {
			continue
		}
		entries = append(entries, analytics.Entry{
			Date:     item.Date.Time,
			Calories: item.Calories,
			ProteinG: deref(item.ProteinG),
			CarbsG:   deref(item.CarbsG),
			FatG:     deref(item.FatG),
		})
	}
	return entries
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
// pgx.ErrNoRows is mapped to errNotFound and not logged.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		logrus.Errorf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return result, errNotFound
	}
	if err != nil {
		logrus.Errorf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		logrus.Errorf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		logrus.Errorf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

/* ─── Postgres store ──────────────────────────────────────────────────── */

// pgStore implements store on a pgx pool.
type pgStore struct {
	db *pgxpool.Pool
}

// ListItems returns items dated within [from, to], oldest first.
func (s *pgStore) ListItems(ctx context.Context, userID int, from, to time.Time) ([]calorieLogItem, error) {
	return queryMany[calorieLogItem](ctx, s.db,
		`SELECT * FROM calorie_log_items
		 WHERE user_id = @userID AND date >= @from AND date <= @to
		 ORDER BY date, created_at`,
		pgx.NamedArgs{
			"userID": userID,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
		})
}

// ListAllItems returns the user's whole log. The analytics engine does not
// rely on the ORDER BY; it is there for stable debugging output.
func (s *pgStore) ListAllItems(ctx context.Context, userID int) ([]calorieLogItem, error) {
	return queryMany[calorieLogItem](ctx, s.db,
		`SELECT * FROM calorie_log_items WHERE user_id = @userID ORDER BY date, created_at`,
		pgx.NamedArgs{"userID": userID})
}

// EarliestItemDate returns the first logged date as YYYY-MM-DD, or nil for an empty log.
func (s *pgStore) EarliestItemDate(ctx context.Context, userID int) (*string, error) {
	// SELECT MIN returns a nullable date, so scan into *string to handle the NULL case.
	var date *string
	err := s.db.QueryRow(ctx,
		`SELECT TO_CHAR(MIN(date), 'YYYY-MM-DD') FROM calorie_log_items WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID}).Scan(&date)
	if err != nil {
		return nil, fmt.Errorf("earliest item date: %w", err)
	}
	return date, nil
}

func (s *pgStore) CreateItem(ctx context.Context, userID int, body createCalorieLogItemRequest) (calorieLogItem, error) {
	return queryOne[calorieLogItem](ctx, s.db,
		`INSERT INTO calorie_log_items (user_id, date, item_name, type, qty, uom, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @date, @itemName, @type, @qty, @uom, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "itemName": body.ItemName,
			"type": body.Type, "qty": body.Qty, "uom": body.Uom,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
}

// UpdateItem uses COALESCE so omitted fields keep their current value.
func (s *pgStore) UpdateItem(ctx context.Context, userID int, id string, body updateCalorieLogItemRequest) (calorieLogItem, error) {
	return queryOne[calorieLogItem](ctx, s.db,
		`UPDATE calorie_log_items SET
			date = COALESCE(@date, date),
			item_name = COALESCE(@itemName, item_name),
			type = COALESCE(@type, type),
			qty = COALESCE(@qty, qty),
			uom = COALESCE(@uom, uom),
			calories = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			carbs_g = COALESCE(@carbsG, carbs_g),
			fat_g = COALESCE(@fatG, fat_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": body.Date, "itemName": body.ItemName, "type": body.Type,
			"qty": body.Qty, "uom": body.Uom, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
		})
}

func (s *pgStore) DeleteItem(ctx context.Context, userID int, id string) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM calorie_log_items WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (s *pgStore) GetUserSettings(ctx context.Context, userID int) (calorieLogUserSettings, error) {
	return queryOne[calorieLogUserSettings](ctx, s.db,
		"SELECT * FROM calorie_log_user_settings WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}

// PatchUserSettings writes only the non-nil fields of body. Each named arg
// matches its column name.
func (s *pgStore) PatchUserSettings(ctx context.Context, userID int, body patchUserSettingsRequest) (calorieLogUserSettings, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}
	set := func(column string, value any) {
		setClauses = append(setClauses, column+" = @"+column)
		args[column] = value
	}

	if body.CalorieBudget != nil {
		set("calorie_budget", *body.CalorieBudget)
	}
	if body.ProteinTargetG != nil {
		set("protein_target_g", *body.ProteinTargetG)
	}
	if body.CarbsTargetG != nil {
		set("carbs_target_g", *body.CarbsTargetG)
	}
	if body.FatTargetG != nil {
		set("fat_target_g", *body.FatTargetG)
	}
	if body.Sex != nil {
		set("sex", *body.Sex)
	}
	if body.DateOfBirth != nil {
		set("date_of_birth", *body.DateOfBirth)
	}
	if body.HeightCM != nil {
		set("height_cm", *body.HeightCM)
	}
	if body.WeightLBS != nil {
		set("weight_lbs", *body.WeightLBS)
	}
	if body.ActivityLevel != nil {
		set("activity_level", *body.ActivityLevel)
	}
	if body.MacroRatio != nil {
		set("macro_ratio", *body.MacroRatio)
	}
	if body.TargetWeightLBS != nil {
		set("target_weight_lbs", *body.TargetWeightLBS)
	}
	if body.TargetDate != nil {
		set("target_date", *body.TargetDate)
	}
	if body.Units != nil {
		set("units", *body.Units)
	}
	if body.BudgetAuto != nil {
		set("budget_auto", *body.BudgetAuto)
	}
	if body.SetupComplete != nil {
		set("setup_complete", *body.SetupComplete)
	}

	if len(setClauses) == 0 {
		return calorieLogUserSettings{}, errNoFields
	}

	query := "UPDATE calorie_log_user_settings SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"
	return queryOne[calorieLogUserSettings](ctx, s.db, query, args)
}

func (s *pgStore) SetCalorieBudget(ctx context.Context, userID, budget int) (calorieLogUserSettings, error) {
	return queryOne[calorieLogUserSettings](ctx, s.db,
		"UPDATE calorie_log_user_settings SET calorie_budget = @budget WHERE user_id = @userID RETURNING *",
		pgx.NamedArgs{"budget": budget, "userID": userID})
}

func (s *pgStore) UserByUsername(ctx context.Context, username string) (user, error) {
	return queryOne[user](ctx, s.db,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
}

func (s *pgStore) UserIDForToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errNotFound
	}
	return userID, err
}
