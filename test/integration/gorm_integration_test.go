package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"
	"github.com/Tarunsai01/ARIA/pkg/database"
	"github.com/Tarunsai01/ARIA/pkg/translation/knowledge"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
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

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.CredentialRepository())
	assert.NotNil(t, uow.KnowledgeRepository())
	assert.NotNil(t, uow.KnowledgeEmbeddingRepository())
	assert.NotNil(t, uow.HistoryRepository())
	assert.NotNil(t, uow.FileRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Knowledge Embedding Repository", func(t *testing.T) {
		// Count implies the table and vector column exist
		count, err := uow.KnowledgeEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("KnowledgeEmbedding count: %d", count)
	})
}

func TestKnowledgeBaseLifecycle(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
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

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	// Seed two users so owner isolation can be checked.
	owner := seedUser(t, gormDB, "kb-owner")
	other := seedUser(t, gormDB, "kb-other")
	defer gormDB.Unscoped().Delete(&model.User{}, owner)
	defer gormDB.Unscoped().Delete(&model.User{}, other)

	videoHash := knowledge.HashBytes([]byte("integration test clip " + uuid.New().String()))
	gloss := "GOOD MORNING"
	entry := &entity.KnowledgeBaseEntry{
		Id:          uuid.New(),
		UserId:      owner,
		Translation: "Good morning",
		Gloss:       &gloss,
		VideoHash:   &videoHash,
		Confidence:  90,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	repo := uow.KnowledgeRepository()
	err = repo.Create(ctx, entry)
	assert.NoError(t, err)
	defer gormDB.Unscoped().Delete(&model.KnowledgeBaseEntry{}, entry.Id)

	t.Run("Lookup by owner and hash", func(t *testing.T) {
		found, err := repo.FindOne(ctx,
			specification.UserOwnedBy{UserID: owner},
			specification.ByVideoHash{Hash: videoHash},
			specification.ActiveEntries{},
		)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, "Good morning", found.Translation)
			assert.Equal(t, 90, found.Confidence)
		}
	})

	t.Run("Owner isolation", func(t *testing.T) {
		found, err := repo.FindOne(ctx,
			specification.UserOwnedBy{UserID: other},
			specification.ByVideoHash{Hash: videoHash},
			specification.ActiveEntries{},
		)
		assert.NoError(t, err)
		assert.Nil(t, found, "another user must never see the entry")
	})

	t.Run("Usage counter increments", func(t *testing.T) {
		assert.NoError(t, repo.IncrementUsage(ctx, entry.Id))
		assert.NoError(t, repo.IncrementUsage(ctx, entry.Id))

		found, err := repo.FindOne(ctx, specification.ByID{ID: entry.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, 2, found.UsageCount)
		}
	})

	t.Run("Deactivated entries drop out of active lookups", func(t *testing.T) {
		now := time.Now()
		entry.IsActive = false
		entry.UpdatedAt = &now
		assert.NoError(t, repo.Update(ctx, entry))

		found, err := repo.FindOne(ctx,
			specification.UserOwnedBy{UserID: owner},
			specification.ByVideoHash{Hash: videoHash},
			specification.ActiveEntries{},
		)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTranslationHistoryRoundtrip(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
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

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	repo := uow.HistoryRepository()

	userId := seedUser(t, gormDB, "history")
	defer gormDB.Unscoped().Delete(&model.User{}, userId)

	output := "I need help!"
	record := &entity.TranslationHistory{
		Id:               uuid.New(),
		UserId:           userId,
		OperationType:    entity.OperationSignToSpeech,
		OutputText:       &output,
		OutputGloss:      []string{"HELP"},
		Provider:         "gemini-flash",
		Source:           "vocabulary",
		ProcessingTimeMs: 1280,
		CreatedAt:        time.Now(),
	}

	assert.NoError(t, repo.Create(ctx, record))
	defer gormDB.Unscoped().Delete(&model.TranslationHistory{}, record.Id)

	t.Run("Filter by operation type", func(t *testing.T) {
		rows, err := repo.FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.ByOperationType{OperationType: string(entity.OperationSignToSpeech)},
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		assert.NoError(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, []string{"HELP"}, rows[0].OutputGloss)
			assert.Equal(t, "vocabulary", rows[0].Source)
		}
	})

	t.Run("CreatedSince window", func(t *testing.T) {
		rows, err := repo.FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.CreatedSince{Since: time.Now().Add(-time.Hour)},
		)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)

		rows, err = repo.FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.CreatedSince{Since: time.Now().Add(time.Hour)},
		)
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("DeleteAllByUserId clears the slate", func(t *testing.T) {
		assert.NoError(t, repo.DeleteAllByUserId(ctx, userId))

		count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: userId})
		assert.NoError(t, err)
		assert.Zero(t, count)
	})
}

func seedUser(t *testing.T, db *gorm.DB, prefix string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	user := model.User{
		Id:            id,
		Email:         prefix + "-" + id.String() + "@example.com",
		Username:      prefix + id.String()[:8],
		FullName:      "Integration Test User",
		Role:          "user",
		Status:        "active",
		EmailVerified: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return id
}
