package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// NewStatsWriter - тот же репозиторий со стороны записи, для импорта
func NewStatsWriter(db *DB, logger *zap.Logger) repository.StatsWriter {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// statisticRow - строка таблицы region_statistics
type statisticRow struct {
	Region                      string        `db:"region"`
	ClaimsReceivedIndividual    int64         `db:"claims_received_individual"`
	ClaimsReceivedCommunity     int64         `db:"claims_received_community"`
	ClaimsReceivedTotal         int64         `db:"claims_received_total"`
	TitlesDistributedIndividual int64         `db:"titles_distributed_individual"`
	TitlesDistributedCommunity  int64         `db:"titles_distributed_community"`
	TitlesDistributedTotal      int64         `db:"titles_distributed_total"`
	ClaimsRejected              sql.NullInt64 `db:"claims_rejected"`
	ClaimsDisposed              int64         `db:"claims_disposed"`
	PercentDisposed             float64       `db:"percent_disposed"`
	ClaimsPending               int64         `db:"claims_pending"`
}

const listStatisticsQuery = `
	SELECT
		region,
		claims_received_individual,
		claims_received_community,
		claims_received_total,
		titles_distributed_individual,
		titles_distributed_community,
		titles_distributed_total,
		claims_rejected,
		claims_disposed,
		percent_disposed,
		claims_pending
	FROM region_statistics
	ORDER BY region
`

// ListStatistics возвращает все записи статистики
func (r *statsRepository) ListStatistics(ctx context.Context) ([]domain.RegionStatistic, error) {
	var rows []statisticRow
	if err := r.db.SelectContext(ctx, &rows, listStatisticsQuery); err != nil {
		r.logger.Error("failed to list region statistics", zap.Error(err))
		return nil, fmt.Errorf("list region statistics: %w", err)
	}

	result := make([]domain.RegionStatistic, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}

	return result, nil
}

const insertStatisticQuery = `
	INSERT INTO region_statistics (
		region,
		claims_received_individual,
		claims_received_community,
		claims_received_total,
		titles_distributed_individual,
		titles_distributed_community,
		titles_distributed_total,
		claims_rejected,
		claims_disposed,
		percent_disposed,
		claims_pending
	) VALUES (
		:region,
		:claims_received_individual,
		:claims_received_community,
		:claims_received_total,
		:titles_distributed_individual,
		:titles_distributed_community,
		:titles_distributed_total,
		:claims_rejected,
		:claims_disposed,
		:percent_disposed,
		:claims_pending
	)
`

// ReplaceStatistics удаляет все записи и вставляет новые в одной транзакции.
// Записи с пустым регионом и повторы (без учёта регистра) пропускаются.
func (r *statsRepository) ReplaceStatistics(ctx context.Context, records []domain.RegionStatistic) (int, error) {
	written := 0
	err := r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM region_statistics"); err != nil {
			return fmt.Errorf("clear region statistics: %w", err)
		}

		seen := make(map[string]struct{}, len(records))
		for _, rec := range records {
			key := strings.ToLower(strings.TrimSpace(rec.Region))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				r.logger.Warn("duplicate region statistic skipped", zap.String("region", rec.Region))
				continue
			}
			seen[key] = struct{}{}

			if _, err := tx.NamedExecContext(ctx, insertStatisticQuery, fromDomain(rec)); err != nil {
				return fmt.Errorf("insert statistic %q: %w", rec.Region, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to replace region statistics", zap.Error(err))
		return 0, err
	}

	r.logger.Info("region statistics replaced", zap.Int("records", written))
	return written, nil
}

func fromDomain(stat domain.RegionStatistic) statisticRow {
	row := statisticRow{
		Region:                      strings.TrimSpace(stat.Region),
		ClaimsReceivedIndividual:    stat.ClaimsReceived.Individual,
		ClaimsReceivedCommunity:     stat.ClaimsReceived.Community,
		ClaimsReceivedTotal:         stat.ClaimsReceived.Total,
		TitlesDistributedIndividual: stat.TitlesDistributed.Individual,
		TitlesDistributedCommunity:  stat.TitlesDistributed.Community,
		TitlesDistributedTotal:      stat.TitlesDistributed.Total,
		ClaimsDisposed:              stat.ClaimsDisposed,
		PercentDisposed:             stat.PercentDisposed,
		ClaimsPending:               stat.ClaimsPending,
	}
	if stat.ClaimsRejected != nil {
		row.ClaimsRejected = sql.NullInt64{Int64: *stat.ClaimsRejected, Valid: true}
	}
	return row
}

func (row statisticRow) toDomain() domain.RegionStatistic {
	stat := domain.RegionStatistic{
		Region: row.Region,
		ClaimsReceived: domain.ClaimCounts{
			Individual: row.ClaimsReceivedIndividual,
			Community:  row.ClaimsReceivedCommunity,
			Total:      row.ClaimsReceivedTotal,
		},
		TitlesDistributed: domain.ClaimCounts{
			Individual: row.TitlesDistributedIndividual,
			Community:  row.TitlesDistributedCommunity,
			Total:      row.TitlesDistributedTotal,
		},
		ClaimsDisposed:  row.ClaimsDisposed,
		PercentDisposed: row.PercentDisposed,
		ClaimsPending:   row.ClaimsPending,
	}
	if row.ClaimsRejected.Valid {
		rejected := row.ClaimsRejected.Int64
		stat.ClaimsRejected = &rejected
	}
	return stat
}
