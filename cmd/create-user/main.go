// CLI tool to create a user with bcrypt-hashed password and default calorie log settings.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lg/stride-nutrition-api/internal/config"
	"lg/stride-nutrition-api/internal/energy"
)

// newUser is what the prompts collect.
type newUser struct {
	Username string
	Email    string
	Password string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.ConfigureLogging(); err != nil {
		logrus.Fatalf("Error configuring logging: %v", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBURL)
	if err != nil {
		logrus.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	u, err := prompt(os.Stdin, os.Stdout)
	if err != nil {
		logrus.Fatal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("Error hashing password: %v", err)
	}
	authToken := uuid.New().String()

	tx, err := conn.Begin(ctx)
	if err != nil {
		logrus.Fatalf("Error starting transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var userID int
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @authToken) RETURNING id`,
		pgx.NamedArgs{
			"username": u.Username, "email": u.Email,
			"password": string(hash), "authToken": authToken,
		},
	).Scan(&userID)
	if err != nil {
		logrus.Fatalf("Error creating user: %v", err)
	}

	// Seed settings with the documented default budget so analytics has a goal
	// before the user fills in a profile.
	defaults := energy.MacroTargets(energy.DefaultDailyCalories, energy.Balanced)
	_, err = tx.Exec(ctx,
		`INSERT INTO calorie_log_user_settings
		   (user_id, calorie_budget, protein_target_g, carbs_target_g, fat_target_g, macro_ratio)
		 VALUES (@userID, @calories, @protein, @carbs, @fat, @ratio)`,
		pgx.NamedArgs{
			"userID": userID, "calories": defaults.Calories, "protein": defaults.ProteinG,
			"carbs": defaults.CarbsG, "fat": defaults.FatG, "ratio": energy.Balanced.String(),
		})
	if err != nil {
		logrus.Fatalf("Error creating calorie log settings: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		logrus.Fatalf("Error committing: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"id":         userID,
		"username":   u.Username,
		"auth_token": authToken,
	}).Info("User created successfully")
}

// prompt reads username, email and password, one line each.
func prompt(in io.Reader, out io.Writer) (newUser, error) {
	reader := bufio.NewReader(in)
	read := func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return "", fmt.Errorf("%s is required", strings.ToLower(label))
		}
		return line, nil
	}

	var u newUser
	var err error
	if u.Username, err = read("Username"); err != nil {
		return u, err
	}
	if u.Email, err = read("Email"); err != nil {
		return u, err
	}
	if u.Password, err = read("Password"); err != nil {
		return u, err
	}
	return u, nil
}
