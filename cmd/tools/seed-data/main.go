// cmd/tools/seed-data/main.go
//
// Seeds a development database with demo candidate profiles and job
// listings so the matching service has something to score.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"placement-matching/internal/common/config"
	"placement-matching/internal/common/database"
	"placement-matching/internal/common/logger"
	"placement-matching/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func main() {
	wipe := flag.Bool("wipe", false, "delete existing rows before seeding")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres failed", zap.Error(err))
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres unreachable", zap.Error(err))
	}

	if *wipe {
		for _, table := range []string{"job_listings", "profiles"} {
			if _, err := pg.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				zapLog.Fatal("wipe failed", zap.String("table", table), zap.Error(err))
			}
		}
		zapLog.Info("Existing rows deleted")
	}

	profiles := demoProfiles()
	for _, p := range profiles {
		_, err := pg.DB.ExecContext(ctx, `
			INSERT INTO profiles (id, name, qualification, stream, graduation_year, gpa)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Qualification, p.Stream, p.GraduationYear, p.GPA)
		if err != nil {
			zapLog.Fatal("profile insert failed", zap.String("name", p.Name), zap.Error(err))
		}
	}
	zapLog.Info("Profiles seeded", zap.Int("count", len(profiles)))

	listings := demoListings()
	for _, l := range listings {
		eligibility, err := json.Marshal(l.Eligibility)
		if err != nil {
			zapLog.Fatal("eligibility marshal failed", zap.String("title", l.Title), zap.Error(err))
		}
		_, err = pg.DB.ExecContext(ctx, `
			INSERT INTO job_listings (id, title, organization, type, work_mode, eligibility,
				salary, salary_amount, posted_at, application_deadline, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO NOTHING`,
			l.ID, l.Title, l.Organization, string(l.Type), string(l.WorkMode), eligibility,
			l.Salary, l.SalaryAmount, l.PostedAt, l.ApplicationDeadline, l.Active)
		if err != nil {
			zapLog.Fatal("listing insert failed", zap.String("title", l.Title), zap.Error(err))
		}
	}
	zapLog.Info("Job listings seeded", zap.Int("count", len(listings)))

	fmt.Fprintf(os.Stdout, "seeded %d profiles and %d job listings\n", len(profiles), len(listings))
}

func demoProfiles() []models.CandidateProfile {
	return []models.CandidateProfile{
		{ID: uuid.New().String(), Name: "Asha Nair", Qualification: "B.Tech", Stream: "CSE", GraduationYear: 2024, GPA: 8.7},
		{ID: uuid.New().String(), Name: "Ravi Kumar", Qualification: "B.Tech", Stream: "ECE", GraduationYear: 2024, GPA: 7.4},
		{ID: uuid.New().String(), Name: "Meera Iyer", Qualification: "MBA", Stream: "Finance", GraduationYear: 2023, GPA: 8.1},
		{ID: uuid.New().String(), Name: "Dev Patel", Qualification: "B.Sc", Stream: "Mathematics", GraduationYear: 2025, GPA: 9.0},
		{ID: uuid.New().String(), Name: "Sana Sheikh", Qualification: "B.Tech", Stream: "CSE", GraduationYear: 2025, GPA: 6.9},
	}
}

func demoListings() []models.JobListing {
	now := time.Now().UTC()
	return []models.JobListing{
		{
			ID:           uuid.New().String(),
			Title:        "Graduate Software Engineer",
			Organization: "Nimbus Systems",
			Type:         models.JobTypeJob,
			WorkMode:     models.WorkModeHybrid,
			Eligibility: models.JobEligibility{
				Qualifications:  []string{"B.Tech"},
				Streams:         []string{"CSE", "ECE"},
				GraduationYears: []int{2024, 2025},
				MinGPA:          floatPtr(7.0),
			},
			Salary:              "6-8 LPA",
			SalaryAmount:        700000,
			PostedAt:            now.AddDate(0, 0, -3),
			ApplicationDeadline: now.AddDate(0, 1, 0),
			Active:              true,
		},
		{
			ID:           uuid.New().String(),
			Title:        "Data Analyst Intern",
			Organization: "Quantafo Labs",
			Type:         models.JobTypeInternship,
			WorkMode:     models.WorkModeRemote,
			Eligibility: models.JobEligibility{
				Qualifications:  []string{"B.Tech", "B.Sc"},
				Streams:         []string{"CSE", "Mathematics"},
				GraduationYears: []int{2025},
			},
			Salary:              "25k/month stipend",
			SalaryAmount:        25000,
			PostedAt:            now.AddDate(0, 0, -10),
			ApplicationDeadline: now.AddDate(0, 0, 20),
			Active:              true,
		},
		{
			ID:           uuid.New().String(),
			Title:        "Associate Consultant",
			Organization: "Stratham Advisory",
			Type:         models.JobTypeJob,
			WorkMode:     models.WorkModeOnsite,
			Eligibility: models.JobEligibility{
				Qualifications:  []string{"MBA"},
				Streams:         []string{"Finance", "Marketing"},
				GraduationYears: []int{2023, 2024},
				MinGPA:          floatPtr(7.5),
			},
			Salary:              "10-12 LPA",
			SalaryAmount:        1100000,
			PostedAt:            now.AddDate(0, 0, -30),
			ApplicationDeadline: now.AddDate(0, 2, 0),
			Active:              true,
		},
	}
}
