package main

import (
	"context"
	"log"
	"os"
	"time"

	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/repository/specification"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/pkg/database"
	"meal-planner-be/pkg/tier"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

var diets = []string{"", "vegetarian", "vegan", "pescetarian", "gluten free"}

// Seeds one demo user per tier with preferences and prints a bearer token
// for each, signed with JWT_SECRET.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("Error: JWT_SECRET is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)
	gofakeit.Seed(0)
	log.Println("Seeding demo users...")

	for _, t := range tier.All() {
		user, err := seedUser(ctx, factory, t)
		if err != nil {
			log.Printf("Error seeding %s user: %v", t, err)
			continue
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.Id.String(),
			"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			log.Printf("Error signing token for '%s': %v", user.Email, err)
			continue
		}
		log.Printf("%s token: %s", t, signed)
	}

	total, err := factory.NewUnitOfWork(ctx).UserRepository().Count(ctx)
	if err != nil {
		log.Fatal("Error: Failed to count users:", err)
	}
	log.Printf("Seeding completed! %d users in database", total)
}

// seedUser creates the demo user of a tier when missing and gives it
// preferences sized to the tier's meal limit.
func seedUser(ctx context.Context, factory unitofwork.RepositoryFactory, t tier.Tier) (*entity.User, error) {
	uow := factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	email := "demo-" + t.String() + "@mealplanner.local"
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{Email: email, FullName: gofakeit.Name(), Tier: t}
		if t != tier.Free {
			expires := time.Now().AddDate(0, 1, 0)
			user.TierExpiresAt = &expires
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("Created user: %s (%s)", email, t)
	} else {
		log.Printf("User '%s' already exists, refreshing preferences", email)
	}

	target := gofakeit.Number(1600, 2600)
	if err := uow.PreferenceRepository().Upsert(ctx, &entity.Preference{
		UserId:        user.Id,
		DietType:      diets[gofakeit.Number(0, len(diets)-1)],
		CalorieTarget: &target,
		MealsPerDay:   tier.LimitsFor(t).MaxMealsPerDay(),
	}); err != nil {
		return nil, err
	}

	return user, uow.Commit()
}
