package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"realestate-buyer-be/internal/constant"
	"realestate-buyer-be/internal/entity"
	"realestate-buyer-be/internal/repository/unitofwork"
	"realestate-buyer-be/pkg/database"
	"realestate-buyer-be/pkg/workflow"
)

// Seeds one parsed demo session so the frontend has something to show
// without a live model provider.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	buyerName := "Demo Buyer"
	summary := "Young family looking for a 3-bedroom house with a yard, close to good schools, under 650k."
	session := entity.Session{
		Id:        uuid.New(),
		BuyerName: &buyerName,
		Summary:   &summary,
		Status:    workflow.StatusParsed,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transcript := entity.Transcript{
		Id:        uuid.New(),
		SessionId: session.Id,
		RawText: "Agent: So tell me what you're looking for. " +
			"Buyer: We need at least three bedrooms, our budget tops out around 650. " +
			"School district matters a lot, our oldest starts kindergarten next fall. " +
			"A yard for the dog would be great. We'd rather avoid anything that needs major work.",
		UploadedAt: time.Now(),
	}

	preferences := []*entity.Preference{
		{Id: uuid.New(), SessionId: session.Id, Category: "budget", Value: "Up to $650,000", Confidence: constant.ConfidenceHigh, Source: constant.SourceTranscript, CreatedAt: time.Now()},
		{Id: uuid.New(), SessionId: session.Id, Category: "bedrooms", Value: "At least 3 bedrooms", Confidence: constant.ConfidenceHigh, Source: constant.SourceTranscript, CreatedAt: time.Now()},
		{Id: uuid.New(), SessionId: session.Id, Category: "schools", Value: "Strong school district, kindergarten next fall", Confidence: constant.ConfidenceHigh, Source: constant.SourceTranscript, CreatedAt: time.Now()},
		{Id: uuid.New(), SessionId: session.Id, Category: "outdoor_space", Value: "Yard for the dog", Confidence: constant.ConfidenceMedium, Source: constant.SourceTranscript, CreatedAt: time.Now()},
		{Id: uuid.New(), SessionId: session.Id, Category: "condition", Value: "Move-in ready, no major renovations", Confidence: constant.ConfidenceMedium, Source: constant.SourceTranscript, CreatedAt: time.Now()},
	}

	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: begin failed: %v", err)
	}
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		uow.Rollback()
		log.Fatalf("Error: seeding session failed: %v", err)
	}
	if err := uow.TranscriptRepository().Create(ctx, &transcript); err != nil {
		uow.Rollback()
		log.Fatalf("Error: seeding transcript failed: %v", err)
	}
	if err := uow.PreferenceRepository().CreateBatch(ctx, preferences); err != nil {
		uow.Rollback()
		log.Fatalf("Error: seeding preferences failed: %v", err)
	}
	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: commit failed: %v", err)
	}

	log.Printf("Success: seeded demo session %s with %d preferences", session.Id, len(preferences))
}
