package root

import (
	"context"
	"database/sql"

	"habitquest/internal/coach"
	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService opens the database and brings cached streaks up to date for
// today before any command reads them.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := engine.NewService(db, engine.NewCalendar(loc), engine.WithLogger(logger))
	if _, err := svc.RefreshStreaks(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func openCoach(ctx context.Context) (*coach.Coach, error) {
	return coach.NewFromConfig(ctx, cfg.Coach, logger.Named("coach"))
}
