package main

import (
	"log"
	"os"

	"meal-planner-be/internal/model"
	"meal-planner-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	postgres := db.Dialector.Name() == "postgres"

	if postgres {
		log.Println("Step 1: Setting up Extensions...")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := model.All()
	log.Printf("Step 2: Running AutoMigrate for %d Tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	if !postgres {
		log.Println("✅ Success: Database migration completed (constraints skipped for non-postgres).")
		return
	}

	log.Println("Step 3: Creating Constraints and Triggers...")

	postMigrationSQL := []string{
		`DO $$ BEGIN
		   ALTER TABLE users ADD CONSTRAINT chk_users_subscription_tier CHECK (subscription_tier IN ('free', 'premium', 'pro'));
		 EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		`DO $$ BEGIN
		   ALTER TABLE meal_plan_items ADD CONSTRAINT chk_meal_plan_items_day CHECK (day_of_week IN ('Mon', 'Tue', 'Wed', 'Thu', 'Fri', 'Sat', 'Sun'));
		 EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		`DO $$ BEGIN
		   ALTER TABLE meal_plan_items ADD CONSTRAINT chk_meal_plan_items_meal_number CHECK (meal_number >= 1);
		 EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		// Function: set_current_timestamp_updated_at
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,

		`DROP TRIGGER IF EXISTS set_preferences_updated_at ON preferences;`,
		`CREATE TRIGGER set_preferences_updated_at BEFORE UPDATE ON preferences
		 FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
