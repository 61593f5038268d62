package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type campaignRepository struct {
	db DBTX
}

func NewCampaignRepository(db DBTX) repository.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `SELECT id, troop_id, name, type, status, iba_percentage, COALESCE(volunteer_percentage, 0),
	       COALESCE(goal, 0), ticket_price, start_date, end_date
	FROM fundraising_campaigns`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (domain.FundraisingCampaign, error) {
	var c domain.FundraisingCampaign
	err := row.Scan(
		&c.ID, &c.TroopID, &c.Name, &c.Type, &c.Status, &c.IBAPercentage, &c.VolunteerPercentage,
		&c.Goal, &c.TicketPrice, &c.StartDate, &c.EndDate,
	)
	return c, err
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.FundraisingCampaign, error) {
	query := campaignColumns + ` WHERE id = $1`
	logger.DatabaseCall("campaignRepository.GetByID", query, "campaignID", id)

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		logger.DatabaseResult("campaignRepository.GetByID", 0, err, "campaignID", id)
		return nil, notFound(err, "campaign", id)
	}
	logger.DatabaseResult("campaignRepository.GetByID", 1, nil, "campaignID", id)
	return &c, nil
}

func (r *campaignRepository) ListByTroop(ctx context.Context, troopID string, status domain.CampaignStatus) ([]domain.FundraisingCampaign, error) {
	query := campaignColumns + ` WHERE troop_id = $1`
	args := []interface{}{troopID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date, id`
	logger.DatabaseCall("campaignRepository.ListByTroop", query, "troopID", troopID, "status", status)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("campaignRepository.ListByTroop", 0, err, "troopID", troopID)
		return nil, err
	}
	defer rows.Close()

	campaigns := []domain.FundraisingCampaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("campaignRepository.ListByTroop", int64(len(campaigns)), nil, "troopID", troopID)
	return campaigns, nil
}

func (r *campaignRepository) ListOrders(ctx context.Context, campaignID string) ([]domain.FundraisingOrder, error) {
	query := `
		SELECT o.id, o.campaign_id, o.scout_id, COALESCE(s.name, ''), o.quantity, COALESCE(o.amount_paid, 0),
		       p.id, COALESCE(p.name, ''), p.price, p.cost, p.iba_amount
		FROM fundraising_orders o
		LEFT JOIN scouts s ON s.id = o.scout_id
		LEFT JOIN campaign_products p ON p.id = o.product_id
		WHERE o.campaign_id = $1
		ORDER BY o.created_at, o.id`
	logger.DatabaseCall("campaignRepository.ListOrders", query, "campaignID", campaignID)

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		logger.DatabaseResult("campaignRepository.ListOrders", 0, err, "campaignID", campaignID)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.FundraisingOrder{}
	for rows.Next() {
		var (
			o                     domain.FundraisingOrder
			productID             null.String
			productName           string
			price, cost, ibaValue decimal.NullDecimal
		)
		err := rows.Scan(
			&o.ID, &o.CampaignID, &o.ScoutID, &o.ScoutName, &o.Quantity, &o.AmountPaid,
			&productID, &productName, &price, &cost, &ibaValue,
		)
		if err != nil {
			return nil, err
		}
		if productID.Valid {
			o.Product = &domain.CampaignProduct{
				ID:         productID.String,
				CampaignID: o.CampaignID,
				Name:       productName,
				Price:      price.Decimal,
				Cost:       cost.Decimal,
				IBAAmount:  ibaValue.Decimal,
			}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("campaignRepository.ListOrders", int64(len(orders)), nil, "campaignID", campaignID)
	return orders, nil
}

func (r *campaignRepository) ListVolunteers(ctx context.Context, campaignID string) ([]domain.FundraisingVolunteer, error) {
	query := `
		SELECT v.campaign_id, v.scout_id, COALESCE(s.name, '')
		FROM fundraising_volunteers v
		LEFT JOIN scouts s ON s.id = v.scout_id
		WHERE v.campaign_id = $1
		ORDER BY v.scout_id`
	logger.DatabaseCall("campaignRepository.ListVolunteers", query, "campaignID", campaignID)

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		logger.DatabaseResult("campaignRepository.ListVolunteers", 0, err, "campaignID", campaignID)
		return nil, err
	}
	defer rows.Close()

	volunteers := []domain.FundraisingVolunteer{}
	for rows.Next() {
		var v domain.FundraisingVolunteer
		if err := rows.Scan(&v.CampaignID, &v.ScoutID, &v.ScoutName); err != nil {
			return nil, err
		}
		volunteers = append(volunteers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("campaignRepository.ListVolunteers", int64(len(volunteers)), nil, "campaignID", campaignID)
	return volunteers, nil
}

// ListDirectSalesInventories loads the inventory tree in four reads: inventories with their
// product, groups, group members, then group items. Groups are shared between items.
func (r *campaignRepository) ListDirectSalesInventories(ctx context.Context, campaignID string) ([]domain.DirectSalesInventory, error) {
	logger.EnterMethod("campaignRepository.ListDirectSalesInventories", "campaignID", campaignID)

	inventories, err := r.listInventories(ctx, campaignID)
	if err != nil {
		logger.ExitMethodWithError("campaignRepository.ListDirectSalesInventories", err, "campaignID", campaignID)
		return nil, err
	}
	groups, err := r.listGroups(ctx, campaignID)
	if err != nil {
		logger.ExitMethodWithError("campaignRepository.ListDirectSalesInventories", err, "campaignID", campaignID)
		return nil, err
	}
	if err := r.attachGroupVolunteers(ctx, campaignID, groups); err != nil {
		logger.ExitMethodWithError("campaignRepository.ListDirectSalesInventories", err, "campaignID", campaignID)
		return nil, err
	}
	if err := r.attachGroupItems(ctx, campaignID, inventories, groups); err != nil {
		logger.ExitMethodWithError("campaignRepository.ListDirectSalesInventories", err, "campaignID", campaignID)
		return nil, err
	}

	logger.ExitMethod("campaignRepository.ListDirectSalesInventories", "campaignID", campaignID, "count", len(inventories))
	return inventories, nil
}

func (r *campaignRepository) listInventories(ctx context.Context, campaignID string) ([]domain.DirectSalesInventory, error) {
	query := `
		SELECT i.id, i.campaign_id, i.quantity,
		       p.id, p.campaign_id, p.name, p.price, p.cost, COALESCE(p.iba_amount, 0)
		FROM direct_sales_inventories i
		JOIN campaign_products p ON p.id = i.product_id
		WHERE i.campaign_id = $1
		ORDER BY i.id`
	logger.DatabaseCall("campaignRepository.listInventories", query, "campaignID", campaignID)

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inventories := []domain.DirectSalesInventory{}
	for rows.Next() {
		var inv domain.DirectSalesInventory
		p := &inv.Product
		err := rows.Scan(
			&inv.ID, &inv.CampaignID, &inv.Quantity,
			&p.ID, &p.CampaignID, &p.Name, &p.Price, &p.Cost, &p.IBAAmount,
		)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

func (r *campaignRepository) listGroups(ctx context.Context, campaignID string) (map[string]*domain.DirectSalesGroup, error) {
	query := `SELECT id, campaign_id, name FROM direct_sales_groups WHERE campaign_id = $1 ORDER BY id`
	logger.DatabaseCall("campaignRepository.listGroups", query, "campaignID", campaignID)

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := map[string]*domain.DirectSalesGroup{}
	for rows.Next() {
		g := &domain.DirectSalesGroup{}
		if err := rows.Scan(&g.ID, &g.CampaignID, &g.Name); err != nil {
			return nil, err
		}
		groups[g.ID] = g
	}
	return groups, rows.Err()
}

func (r *campaignRepository) attachGroupVolunteers(ctx context.Context, campaignID string, groups map[string]*domain.DirectSalesGroup) error {
	query := `
		SELECT v.group_id, v.scout_id, v.user_id, COALESCE(s.name, '')
		FROM direct_sales_group_volunteers v
		JOIN direct_sales_groups g ON g.id = v.group_id
		LEFT JOIN scouts s ON s.id = v.scout_id
		WHERE g.campaign_id = $1
		ORDER BY v.group_id, v.scout_id`
	logger.DatabaseCall("campaignRepository.attachGroupVolunteers", query, "campaignID", campaignID)

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.DirectSalesGroupVolunteer
		if err := rows.Scan(&v.GroupID, &v.ScoutID, &v.UserID, &v.ScoutName); err != nil {
			return err
		}
		if g, ok := groups[v.GroupID]; ok {
			g.Volunteers = append(g.Volunteers, v)
		}
	}
	return rows.Err()
}

func (r *campaignRepository) attachGroupItems(ctx context.Context, campaignID string, inventories []domain.DirectSalesInventory, groups map[string]*domain.DirectSalesGroup) error {
	query := `
		SELECT gi.id, gi.inventory_id, gi.group_id, gi.quantity, gi.sold_count
		FROM direct_sales_group_items gi
		JOIN direct_sales_inventories i ON i.id = gi.inventory_id
		WHERE i.campaign_id = $1
		ORDER BY gi.id`
	logger.DatabaseCall("campaignRepository.attachGroupItems", query, "campaignID", campaignID)

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[string]int, len(inventories))
	for i := range inventories {
		byID[inventories[i].ID] = i
	}

	for rows.Next() {
		var (
			item        domain.DirectSalesGroupItem
			inventoryID string
		)
		if err := rows.Scan(&item.ID, &inventoryID, &item.GroupID, &item.Quantity, &item.SoldCount); err != nil {
			return err
		}
		idx, ok := byID[inventoryID]
		if !ok {
			continue
		}
		item.Group = groups[item.GroupID]
		inventories[idx].Items = append(inventories[idx].Items, item)
	}
	return rows.Err()
}
