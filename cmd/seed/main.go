// Command seed loads the demo fixtures and optional village sheets into the
// PostgreSQL store.
// Usage: go run ./cmd/seed [-demo=false] [-villages villages.xlsx]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/export"
	"healthmon/internal/fixtures"
	"healthmon/internal/logger"
	"healthmon/internal/repository/postgres"
	"healthmon/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	demo := flag.Bool("demo", true, "load the demo users, villages, reports and alerts")
	villagesPath := flag.String("villages", "", "xlsx workbook of villages to upsert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "healthmon-seed")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repos := service.Repositories{
		Users:         postgres.NewUserRepo(db),
		Villages:      postgres.NewVillageRepo(db),
		HealthReports: postgres.NewHealthReportRepo(db),
		WaterReports:  postgres.NewWaterReportRepo(db),
		Alerts:        postgres.NewAlertRepo(db),
	}
	ctx := context.Background()

	if *demo {
		if err := seedDemo(ctx, repos, zlog); err != nil {
			return err
		}
	}
	if *villagesPath != "" {
		if err := seedVillages(ctx, repos, *villagesPath, zlog); err != nil {
			return err
		}
	}
	return nil
}

// seedDemo writes the fixtures. Users that already exist are skipped, and
// reports and alerts are only written on a store that had no demo users.
func seedDemo(ctx context.Context, repos service.Repositories, zlog *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(fixtures.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	created := 0
	for _, u := range fixtures.Users(string(hash)) {
		u := u
		if err := repos.Users.Create(ctx, &u); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				continue
			}
			return fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
		created++
	}
	zlog.Info("seeded users", zap.Int("created", created))

	for _, v := range fixtures.Villages() {
		v := v
		if err := repos.Villages.Upsert(ctx, &v); err != nil {
			return fmt.Errorf("seeding village %s: %w", v.Name, err)
		}
	}

	if created == 0 {
		zlog.Info("demo users already present, skipping reports and alerts")
		return nil
	}
	for _, r := range fixtures.HealthReports() {
		r := r
		if err := repos.HealthReports.Create(ctx, &r); err != nil {
			return fmt.Errorf("seeding health report: %w", err)
		}
	}
	for _, r := range fixtures.WaterReports() {
		r := r
		if err := repos.WaterReports.Create(ctx, &r); err != nil {
			return fmt.Errorf("seeding water report: %w", err)
		}
	}
	for _, a := range fixtures.Alerts() {
		a := a
		if err := repos.Alerts.Create(ctx, &a); err != nil {
			return fmt.Errorf("seeding alert: %w", err)
		}
	}
	zlog.Info("seeded demo records",
		zap.Int("health_reports", len(fixtures.HealthReports())),
		zap.Int("water_reports", len(fixtures.WaterReports())),
		zap.Int("alerts", len(fixtures.Alerts())),
	)
	return nil
}

func seedVillages(ctx context.Context, repos service.Repositories, path string, zlog *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open village workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	villages, err := export.ReadVillages(f)
	if err != nil {
		return fmt.Errorf("read village workbook: %w", err)
	}
	for i := range villages {
		if err := repos.Villages.Upsert(ctx, &villages[i]); err != nil {
			return fmt.Errorf("upserting village %s: %w", villages[i].Name, err)
		}
	}
	zlog.Info("upserted villages", zap.String("file", path), zap.Int("count", len(villages)))
	return nil
}
