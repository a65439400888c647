// Command seed populates the database with the default development
// accounts. Idempotent: accounts that already exist are left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/config"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/database"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/logger"
)

const defaultPassword = "password123"

type seedAccount struct {
	name          string
	email         string
	role          string
	matriculation string
	course        string
}

var accounts = []seedAccount{
	{name: "Administrador", email: "admin@university.edu", role: model.RoleAdmin},
	{name: "Coordenador de Curso", email: "coordenador@university.edu", role: model.RoleCoordenador},
	{name: "Professor Orientador", email: "orientador@university.edu", role: model.RoleOrientador},
	{name: "Aluno de Teste", email: "student@university.edu", role: model.RoleStudent,
		matriculation: "20230001", course: "Ciência da Computação"},
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("unwrapping sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("running migrations", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), 12)
	if err != nil {
		zapLogger.Fatal("hashing default password", zap.Error(err))
	}

	for _, acc := range accounts {
		_, err := repo.User.GetByEmail(ctx, acc.email)
		if err == nil {
			zapLogger.Info("account exists, skipping", zap.String("email", acc.email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zapLogger.Fatal("looking up account", zap.String("email", acc.email), zap.Error(err))
		}

		user := &model.User{
			Name:          acc.name,
			Email:         acc.email,
			PasswordHash:  string(hash),
			Role:          acc.role,
			Matriculation: acc.matriculation,
			Course:        acc.course,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			zapLogger.Fatal("creating account", zap.String("email", acc.email), zap.Error(err))
		}
		zapLogger.Info("account created",
			zap.String("email", acc.email),
			zap.String("role", acc.role),
		)
	}

	zapLogger.Info("seed finished")
}
