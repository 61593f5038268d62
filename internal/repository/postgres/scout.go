package postgres

import (
	"context"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type scoutRepository struct {
	db DBTX
}

func NewScoutRepository(db DBTX) repository.ScoutRepository {
	return &scoutRepository{db: db}
}

func (r *scoutRepository) ListByTroop(ctx context.Context, troopID string) ([]domain.Scout, error) {
	query := `SELECT id, troop_id, name, status, COALESCE(iba_balance, 0) FROM scouts WHERE troop_id = $1 ORDER BY name, id`
	logger.DatabaseCall("scoutRepository.ListByTroop", query, "troopID", troopID)

	rows, err := r.db.QueryContext(ctx, query, troopID)
	if err != nil {
		logger.DatabaseResult("scoutRepository.ListByTroop", 0, err, "troopID", troopID)
		return nil, err
	}
	defer rows.Close()

	scouts := []domain.Scout{}
	for rows.Next() {
		var s domain.Scout
		if err := rows.Scan(&s.ID, &s.TroopID, &s.Name, &s.Status, &s.IBABalance); err != nil {
			return nil, err
		}
		scouts = append(scouts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("scoutRepository.ListByTroop", int64(len(scouts)), nil, "troopID", troopID)
	return scouts, nil
}
