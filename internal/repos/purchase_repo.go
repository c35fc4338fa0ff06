package repos

import (
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// Insert takes sqlx.Ext so the purchase lands in the same transaction as the
// stock movement it documents.
func (r *PurchaseRepo) Insert(q sqlx.Ext, p domain.Purchase) error {
	_, err := q.Exec(`
	  INSERT INTO purchases(id, user_id, product_id, qty, unit_cost, total_cost, purchased_at)
	  VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.UserID, p.ProductID, p.Qty, p.UnitCost, p.TotalCost)
	return err
}

func (r *PurchaseRepo) List(userID string, limit, offset int) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.Select(&out, `
	  SELECT id, user_id, product_id, qty, unit_cost, total_cost, purchased_at
	  FROM purchases
	  WHERE user_id = ?
	  ORDER BY datetime(purchased_at) DESC
	  LIMIT ? OFFSET ?
	`, userID, limit, offset)
	return out, err
}

func (r *PurchaseRepo) ListByProduct(userID, productID string) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.Select(&out, `
	  SELECT id, user_id, product_id, qty, unit_cost, total_cost, purchased_at
	  FROM purchases
	  WHERE user_id = ? AND product_id = ?
	  ORDER BY datetime(purchased_at) DESC
	`, userID, productID)
	return out, err
}
