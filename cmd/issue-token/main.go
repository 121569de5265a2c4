package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/lophocvn/lophoc-backend/internal/config"
	"github.com/lophocvn/lophoc-backend/internal/database"
	"github.com/lophocvn/lophoc-backend/internal/logger"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/lophocvn/lophoc-backend/internal/service"
	"golang.org/x/term"
)

// issue-token mints an actor JWT for a staff user. The API itself never
// issues tokens; operators run this against the database directly.
func main() {
	var email string
	flag.StringVar(&email, "email", "", "Email of the staff user")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	tokenService := service.NewTokenService(cfg)

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Enter Email: ")
		email, _ = reader.ReadString('\n')
		email = strings.TrimSpace(email)
	}
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("User lookup failed")
	}
	if !user.IsActive {
		log.Fatal().Str("email", email).Msg("User is deactivated")
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println()

	if err := tokenService.CheckPassword(user.PasswordHash, string(bytePassword)); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fmt.Println("Error: Invalid password")
			return
		}
		log.Fatal().Err(err).Msg("Password check failed")
	}

	token, err := tokenService.Generate(user)
	if err != nil {
		log.Fatal().Err(err).Msg("Token generation failed")
	}

	fmt.Printf("\nToken for %s (%s, role=%s), valid for %s:\n\n%s\n",
		user.FullName, user.Email, user.Role, cfg.TokenExpiry, token)
}
