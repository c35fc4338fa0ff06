package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type SellerRepo struct{ db *sqlx.DB }

func NewSellerRepo(db *sqlx.DB) *SellerRepo { return &SellerRepo{db: db} }

func (r *SellerRepo) Create(s domain.Seller) error {
	_, err := r.db.Exec(`
	  INSERT INTO sellers(id, user_id, name, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, s.ID, s.UserID, s.Name)
	return err
}

func (r *SellerRepo) List(userID string) ([]domain.Seller, error) {
	var out []domain.Seller
	err := r.db.Select(&out, `
	  SELECT id, user_id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM sellers
	  WHERE user_id = ?
	  ORDER BY name
	`, userID)
	return out, err
}

func (r *SellerRepo) Get(userID, id string) (domain.Seller, error) {
	var s domain.Seller
	err := r.db.Get(&s, `
	  SELECT id, user_id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM sellers
	  WHERE id = ? AND user_id = ?
	`, id, userID)
	return s, err
}

func (r *SellerRepo) Rename(userID, id, name string) error {
	res, err := r.db.Exec(`
	  UPDATE sellers SET name = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	`, name, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("seller %s not found", id)
	}
	return nil
}

// Delete fails while products still reference the seller (FK RESTRICT).
func (r *SellerRepo) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM sellers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("seller %s not found", id)
	}
	return nil
}
