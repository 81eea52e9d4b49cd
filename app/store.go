package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type store struct {
	users userservice.Repository
	blogs blogservice.Repository
	close func()
}

// openStore connects the repositories selected by STORE_DRIVER.
func openStore(cfg *Config, logger *slog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case storePostgres:
		return openPostgres(cfg, logger)
	default:
		return openMongo(cfg, logger)
	}
}

func openMongo(cfg *Config, logger *slog.Logger) (*store, error) {
	db, err := common.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := userservice.NewMongoModel(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		common.CloseMongo(db)
		return nil, err
	}

	blogs := blogservice.NewMongoModel(db)
	if err := blogs.EnsureIndexes(ctx); err != nil {
		common.CloseMongo(db)
		return nil, err
	}

	logger.Info("connected to mongodb", slog.String("db", cfg.MongoDB))

	return &store{
		users: users,
		blogs: blogs,
		close: func() { common.CloseMongo(db) },
	}, nil
}

func openPostgres(cfg *Config, logger *slog.Logger) (*store, error) {
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		return nil, err
	}

	dsn := common.PostgresDSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	m, err := common.Migrate("file://migrations", dsn)
	if err != nil {
		common.CloseDB(db)
		return nil, err
	}
	m.Close()

	logger.Info("connected to postgres", slog.String("db", cfg.DBName))

	return &store{
		users: userservice.NewDBModel(db),
		blogs: blogservice.NewDBModel(db),
		close: func() { common.CloseDB(db) },
	}, nil
}
