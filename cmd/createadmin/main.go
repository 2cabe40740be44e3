package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/service-rental/internal/config"
	"github.com/rentwheels/service-rental/internal/database"
	"github.com/rentwheels/service-rental/internal/domain"
	userDomain "github.com/rentwheels/service-rental/internal/domain/user"
	"github.com/rentwheels/service-rental/internal/logger"
	"github.com/rentwheels/service-rental/internal/repository"
)

// createadmin seeds an administrator account. Run it once against a fresh
// database, or rerun with a new email to add more admins.
func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -name NAME -email EMAIL -password PASSWORD")
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "createadmin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	admin, err := userDomain.NewUser(*name, *email, string(hash), domain.RoleAdmin)
	if err != nil {
		log.Fatal("invalid admin data", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewGormUserRepository(db)
	if err := users.Save(ctx, admin); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			log.Fatal("an account with this email already exists", zap.String("email", admin.Email()))
		}
		log.Fatal("failed to create admin", zap.Error(err))
	}

	log.Info("admin account created",
		zap.String("user_id", admin.ID().String()),
		zap.String("email", admin.Email()),
	)
}
