package data

import (
	"time"

	"cryptoapp/src/config"
	"cryptoapp/src/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseHandler struct {
	client *gorm.DB
}

// NewDatabaseHandler opens a GORM handle on the same Postgres database the pgx pool uses.
func NewDatabaseHandler(cfg *config.Config) (*DatabaseHandler, error) {
	return Open(database.DSN(cfg))
}

func Open(dsn string) (*DatabaseHandler, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(time.Minute * 3)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	return &DatabaseHandler{client: gormDB}, nil
}

func (dh *DatabaseHandler) GetDBClient() *gorm.DB {
	return dh.client
}

func (dh *DatabaseHandler) CloseConnection() error {
	db, err := dh.client.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
