package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nwachie/skillswap/backend/internal/adapters/database"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	"github.com/nwachie/skillswap/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				credit_transfers,
				reviews,
				messages,
				skill_deals,
				skills,
				user_profiles
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	profileRepo := database.NewProfileAdapter(pgClient)
	skillRepo := database.NewSkillAdapter(pgClient)
	dealRepo := database.NewDealAdapter(pgClient)
	messageRepo := database.NewMessageAdapter(pgClient)

	now := time.Now()

	profiles := []*entities.UserProfile{
		{UserID: "user-ada", DisplayName: "Ada", Location: "Lagos", Bio: "Teaches guitar, wants to learn French", CreatedAt: now, UpdatedAt: now},
		{UserID: "user-bayo", DisplayName: "Bayo", Location: "Abuja", Bio: "French tutor", CreatedAt: now, UpdatedAt: now},
		{UserID: "user-chidi", DisplayName: "Chidi", Location: "Enugu", Bio: "Wants guitar lessons", CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range profiles {
		if err := profileRepo.Create(ctx, p); err != nil {
			log.Printf("profile %s: %v", p.UserID, err)
		}
	}

	skills := []*entities.Skill{
		{ID: uuid.New().String(), Name: "Guitar Lessons", Category: "music", Level: "intermediate", Description: "Acoustic and electric basics", OwnerID: "user-ada", SkillType: entities.SkillTypeOffered, Rating: entities.DefaultSkillRating, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Conversational French", Category: "languages", Level: "advanced", Description: "Weekly conversation practice", OwnerID: "user-bayo", SkillType: entities.SkillTypeOffered, Rating: entities.DefaultSkillRating, CreatedAt: now},
		{ID: uuid.New().String(), Name: "French for Beginners", Category: "languages", Level: "beginner", Description: "Looking for a patient tutor", OwnerID: "user-ada", SkillType: entities.SkillTypeWanted, Rating: entities.DefaultSkillRating, CreatedAt: now},
	}
	for _, s := range skills {
		if err := skillRepo.Create(ctx, s); err != nil {
			log.Printf("skill %s: %v", s.Name, err)
		}
	}

	deal := &entities.SkillDeal{
		ID:          uuid.New().String(),
		SkillID:     skills[0].ID,
		RequesterID: "user-chidi",
		ProviderID:  "user-ada",
		Status:      entities.DealStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := dealRepo.Create(ctx, deal); err != nil {
		log.Printf("deal: %v", err)
	}

	message := &entities.Message{
		ID:         uuid.New().String(),
		SenderID:   "user-chidi",
		ReceiverID: "user-ada",
		Content:    "New deal request for your skill \"Guitar Lessons\".",
		Timestamp:  now,
		DealID:     &deal.ID,
	}
	if err := messageRepo.Create(ctx, message); err != nil {
		log.Printf("message: %v", err)
	}

	log.Printf("Seeded %d profiles, %d skills, 1 pending deal", len(profiles), len(skills))
}
