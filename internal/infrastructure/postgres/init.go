package postgres

import (
	"log"

	"github.com/hausly/hausly-escrow-service/internal/config"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EscrowConfig) *gorm.DB {
	dsn := cfg.EscrowDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.EscrowModel{},
		&models.HandoverModel{},
		&models.WalletModel{},
		&models.CreatorMetricsModel{},
		&models.CreatorProfileModel{},
	)

	return db
}
