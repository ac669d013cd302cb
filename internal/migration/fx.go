package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/config"
	"github.com/smallbiznis/paymirror/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		// Embedded migrations are written for postgres. Other dialects
		// (sqlite in tests, mostly) create their schema per test.
		if cfg.DBType != "postgres" {
			log.Info("skipping migrations", zap.String("db_type", cfg.DBType))
			return nil
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoTenant(conn)
		}
		return nil
	}),
)
