package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, user_id, COALESCE(seller_id,'') AS seller_id, name, category,
  COALESCE(brand,'') AS brand, price, stock, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

// Insert writes a product row. Takes sqlx.Ext so it can run inside the
// create-product transaction alongside the opening purchase.
func (r *ProductRepo) Insert(q sqlx.Ext, p domain.Product) error {
	seller := any(nil)
	if p.SellerID != "" {
		seller = p.SellerID
	}
	brand := any(nil)
	if p.Brand != "" {
		brand = p.Brand
	}
	_, err := q.Exec(`
	  INSERT INTO products(id, user_id, seller_id, name, category, brand, price, stock, active, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
	`, p.ID, p.UserID, seller, p.Name, p.Category, brand, p.Price, p.Stock)
	return err
}

func (r *ProductRepo) Get(userID, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ? AND user_id = ?
	`, id, userID)
	return p, err
}

func (r *ProductRepo) List(userID, category, sellerID string, limit, offset int) ([]domain.Product, error) {
	where := `user_id = ? AND active = 1`
	args := []any{userID}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	if sellerID != "" {
		where += ` AND seller_id = ?`
		args = append(args, sellerID)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *ProductRepo) Search(userID, q string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE user_id = ? AND active = 1
	    AND (LOWER(name) LIKE ? OR LOWER(COALESCE(brand,'')) LIKE ?)
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, userID, "%"+q+"%", "%"+q+"%", limit, offset)
	return out, err
}

// Update rewrites the mutable fields; stock is only touched via
// IncrementStock/DecrementStock so the purchase/sale audit stays consistent.
func (r *ProductRepo) Update(userID, id string, p domain.Product) error {
	seller := any(nil)
	if p.SellerID != "" {
		seller = p.SellerID
	}
	brand := any(nil)
	if p.Brand != "" {
		brand = p.Brand
	}
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, category = ?, brand = ?, price = ?, seller_id = ?, active = ?,
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	`, p.Name, p.Category, brand, p.Price, seller, p.Active, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

// IncrementStock adds "by" units. Runs on sqlx.Ext so the caller can pair it
// with the purchase record in one transaction.
func (r *ProductRepo) IncrementStock(q sqlx.Ext, userID, id string, by int) error {
	res, err := q.Exec(`
	  UPDATE products
	  SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	`, by, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

// DecrementStock atomically subtracts "by" units if enough stock exists.
// Returns an error if there isn't sufficient stock.
func (r *ProductRepo) DecrementStock(q sqlx.Ext, userID, id string, by int) error {
	res, err := q.Exec(`
	  UPDATE products
	  SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ? AND stock >= ?
	`, by, id, userID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient stock for %s", id)
	}
	return nil
}

func (r *ProductRepo) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

// Stock returns current stock for an owned product.
// If no row exists, it returns sql.ErrNoRows from sqlx.Get.
func (r *ProductRepo) Stock(userID, id string) (int, error) {
	var stock int
	err := r.db.Get(&stock, `
	  SELECT stock FROM products
	  WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// Row used by the admin low-stock overview
type LowStockRow struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"userId"`
	Name   string `db:"name" json:"name"`
	Stock  int    `db:"stock" json:"stock"`
}

// ListLowStock returns active products at or below the threshold, across users.
func (r *ProductRepo) ListLowStock(threshold int) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := r.db.Select(&rows, `
	  SELECT id, user_id, name, stock
	  FROM products
	  WHERE active = 1 AND stock <= ?
	  ORDER BY stock, name
	`, threshold)
	return rows, err
}

// DeactivateByUser retires a user's products without touching sale/purchase
// history (used by admin user deletion).
func (r *ProductRepo) DeactivateByUser(q sqlx.Ext, userID string) error {
	_, err := q.Exec(`
	  UPDATE products SET active = 0, updated_at = CURRENT_TIMESTAMP
	  WHERE user_id = ?
	`, userID)
	return err
}
