package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewStatsRepositoryForTest creates a stats repository with test database and logger
func NewStatsRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StatsRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewStatsRepository(pgDB, logger)
}

// NewStatsWriterForTest creates a stats writer with test database and logger
func NewStatsWriterForTest(db *sqlx.DB, logger *zap.Logger) repository.StatsWriter {
	return postgres.NewStatsWriter(NewDBForTest(db, logger), logger)
}
