// Command createadmin interactively creates an admin user. Meant to be
// run once against a fresh database before the first login.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kpapadakis/emporos/internal/auth"
	authStore "github.com/kpapadakis/emporos/internal/auth/store"
	"github.com/kpapadakis/emporos/internal/config"
	"github.com/kpapadakis/emporos/internal/database"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	svc := auth.NewService(authStore.New(db), cfg.JWT.Secret, cfg.JWT.TTL)

	var username, email, fullName, password, confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username cannot be empty")
					}
					return nil
				}).
				Value(&username),

			huh.NewInput().
				Title("Email").
				Placeholder("admin@example.com").
				Value(&email),

			huh.NewInput().
				Title("Full name").
				Value(&fullName),

			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if len(s) < 8 {
						return fmt.Errorf("password must be at least 8 characters")
					}
					return nil
				}).
				Value(&password),

			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	).WithWidth(50)

	if err := form.Run(); err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Aborted: %v", err)))
		os.Exit(1)
	}

	if password != confirm {
		fmt.Println(errorStyle.Render("Passwords do not match"))
		os.Exit(1)
	}

	user, err := svc.CreateUser(context.Background(), auth.CreateUserParams{
		Username: username,
		Password: password,
		Email:    email,
		FullName: fullName,
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			fmt.Println(errorStyle.Render(fmt.Sprintf("User %q already exists", username)))
			os.Exit(1)
		}

		fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to create user: %v", err)))
		os.Exit(1)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Admin user %q created (%s)", user.Username, user.ID)))
}
