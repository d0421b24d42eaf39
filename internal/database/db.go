package database

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jobvista/backend/internal/models"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Info("Database connection established")

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	return db
}

// Migrate creates or updates the schema. Split out so tests can run it
// against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Resume{},
		&models.EmployeeDetails{},
		&models.Notification{},
		&models.Feedback{},
		&models.Learn{},
		&models.QuizAttempt{},
	)
}
