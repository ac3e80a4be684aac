package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"

	"realestate-buyer-be/internal/repository/specification"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.BuyerProfileRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Preference Repository", func(t *testing.T) {
		count, err := uow.PreferenceRepository().Count(context.Background(),
			specification.BySessionID{SessionID: uuid.New()},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background(),
			specification.BySessionID{SessionID: uuid.New()},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
