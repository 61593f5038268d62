package postgres

import (
	"context"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type troopRepository struct {
	db DBTX
}

func NewTroopRepository(db DBTX) repository.TroopRepository {
	return &troopRepository{db: db}
}

func (r *troopRepository) GetByID(ctx context.Context, id string) (*domain.Troop, error) {
	query := `SELECT id, name, slug, created_at FROM troops WHERE id = $1`
	logger.DatabaseCall("troopRepository.GetByID", query, "troopID", id)

	t := &domain.Troop{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		logger.DatabaseResult("troopRepository.GetByID", 0, err, "troopID", id)
		return nil, notFound(err, "troop", id)
	}
	logger.DatabaseResult("troopRepository.GetByID", 1, nil, "troopID", id)
	return t, nil
}

func (r *troopRepository) List(ctx context.Context) ([]domain.Troop, error) {
	query := `SELECT id, name, slug, created_at FROM troops ORDER BY name, id`
	logger.DatabaseCall("troopRepository.List", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("troopRepository.List", 0, err)
		return nil, err
	}
	defer rows.Close()

	troops := []domain.Troop{}
	for rows.Next() {
		var t domain.Troop
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		troops = append(troops, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("troopRepository.List", int64(len(troops)), nil)
	return troops, nil
}
