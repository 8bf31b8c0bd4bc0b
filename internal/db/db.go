package db

import (
	"log"
	"time"

	"github.com/booklyhq/bookly-api/internal/config"
	"github.com/booklyhq/bookly-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Business{},
		&models.Service{},
		&models.Booking{},
		&models.CalendarEvent{},
		&models.QueueTicket{},
		&models.Subscription{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE businesses
        SET timezone = 'Asia/Riyadh'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Storage-level backstop for the no-overlap guarantee. The write path
	// re-validates under a row lock; this constraint catches anything that
	// still slips through and surfaces as a 23P01 the repository maps to a
	// write conflict.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
                EXCLUDE USING gist (
                    service_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                ) WHERE (status <> 'cancelled');
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$;
    `)

	return db
}
