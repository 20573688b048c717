// Command create-admin bootstraps a fresh installation: it creates an admin
// account and seeds the default settings and system pages. Safe to run more
// than once; existing rows are left untouched.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"asso-portal/config"
	"asso-portal/internal/model"
	"asso-portal/pkg/database"
	applogger "asso-portal/pkg/logger"
)

var defaultSettings = []model.Setting{
	{Key: model.SettingMaintenanceMode, Value: "false", Label: "Maintenance mode", Group: "general", Type: "boolean"},
	{Key: model.SettingOrdersEnabled, Value: "true", Label: "Cafeteria ordering", Group: "cafeteria", Type: "boolean"},
	{Key: model.SettingRegistrationsEnabled, Value: "true", Label: "Event registrations", Group: "events", Type: "boolean"},
	{Key: model.SettingRegistrationOpen, Value: "true", Label: "Member signup", Group: "general", Type: "boolean"},
	{Key: model.SettingSiteName, Value: "Association", Label: "Site name", Group: "general", Type: "text"},
	{Key: model.SettingContactEmail, Value: "", Label: "Contact email", Group: "general", Type: "text"},
	{Key: model.SettingCafeteriaHours, Value: "", Label: "Cafeteria opening hours", Group: "cafeteria", Type: "text"},
	{Key: model.SettingCafeteriaMessage, Value: "", Label: "Cafeteria banner message", Group: "cafeteria", Type: "text"},
}

var systemPages = []model.Page{
	{Slug: "home", Title: "Accueil", Content: "", IsPublished: true},
	{Slug: "presentation", Title: "Présentation", Content: "", IsPublished: true},
	{Slug: "team", Title: "L'équipe", Content: "", IsPublished: true},
	{Slug: "legal", Title: "Mentions légales", Content: "", IsPublished: true},
	{Slug: "privacy", Title: "Politique de confidentialité", Content: "", IsPublished: true},
}

func main() {
	var (
		email    = flag.String("email", "", "admin email (required)")
		password = flag.String("password", "", "admin password (required)")
		name     = flag.String("name", "Admin", "admin display name")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("hashing password failed", zap.Error(err))
	}

	admin := model.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin)
	if res.Error != nil {
		logger.Fatal("creating admin failed", zap.Error(res.Error))
	}
	if res.RowsAffected == 0 {
		logger.Info("admin already exists, skipped", zap.String("email", *email))
	} else {
		logger.Info("admin created", zap.String("email", *email))
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&defaultSettings).Error; err != nil {
		logger.Fatal("seeding settings failed", zap.Error(err))
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&systemPages).Error; err != nil {
		logger.Fatal("seeding pages failed", zap.Error(err))
	}

	logger.Info("bootstrap complete")
}
