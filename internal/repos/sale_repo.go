package repos

import (
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// Insert takes sqlx.Ext so it can share the transaction that decrements stock.
func (r *SaleRepo) Insert(q sqlx.Ext, s domain.Sale) error {
	contact := any(nil)
	if s.BuyerContact != "" {
		contact = s.BuyerContact
	}
	_, err := q.Exec(`
	  INSERT INTO sales(id, user_id, product_id, qty, total_price, buyer_name, buyer_contact, sold_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, s.ID, s.UserID, s.ProductID, s.Qty, s.TotalPrice, s.BuyerName, contact)
	return err
}

const saleCols = `
  id, user_id, product_id, qty, total_price, buyer_name,
  COALESCE(buyer_contact,'') AS buyer_contact, sold_at`

func (r *SaleRepo) Get(userID, id string) (domain.Sale, error) {
	var s domain.Sale
	err := r.db.Get(&s, `
	  SELECT `+saleCols+`
	  FROM sales
	  WHERE id = ? AND user_id = ?
	`, id, userID)
	return s, err
}

func (r *SaleRepo) List(userID string, limit, offset int) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+`
	  FROM sales
	  WHERE user_id = ?
	  ORDER BY datetime(sold_at) DESC
	  LIMIT ? OFFSET ?
	`, userID, limit, offset)
	return out, err
}

func (r *SaleRepo) ListByProduct(userID, productID string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+`
	  FROM sales
	  WHERE user_id = ? AND product_id = ?
	  ORDER BY datetime(sold_at) DESC
	`, userID, productID)
	return out, err
}

// Row used by the admin cross-user sales overview
type SaleOverviewRow struct {
	ID         string  `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"userId"`
	Product    string  `db:"product" json:"product"`
	Qty        int     `db:"qty" json:"qty"`
	TotalPrice float64 `db:"total_price" json:"totalPrice"`
	BuyerName  string  `db:"buyer_name" json:"buyerName"`
	SoldAt     string  `db:"sold_at" json:"soldAt"`
}

func (r *SaleRepo) ListLatestAll(limit int) ([]SaleOverviewRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []SaleOverviewRow
	err := r.db.Select(&out, `
	  SELECT s.id, s.user_id, p.name AS product, s.qty, s.total_price, s.buyer_name, s.sold_at
	  FROM sales s
	  JOIN products p ON p.id = s.product_id
	  ORDER BY datetime(s.sold_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}
