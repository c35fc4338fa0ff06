package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ReportRepo runs the revenue rollup queries. All queries are scoped to one
// owning user; buckets with no sales are simply absent from the result.
type ReportRepo struct{ db *sqlx.DB }

func NewReportRepo(db *sqlx.DB) *ReportRepo { return &ReportRepo{db: db} }

type Summary struct {
	Revenue   float64 `db:"revenue" json:"revenue"`
	SaleCount int     `db:"sale_count" json:"saleCount"`
	UnitsSold int     `db:"units_sold" json:"unitsSold"`
}

// Bucket is one rollup row: Key is a day (2025-01-31), a week (2025-04),
// a month (01..12) or a year depending on the query.
type Bucket struct {
	Key       string  `db:"bucket" json:"bucket"`
	Revenue   float64 `db:"revenue" json:"revenue"`
	SaleCount int     `db:"sale_count" json:"saleCount"`
}

// Summary totals revenue and counts over [from, to] calendar dates (inclusive).
func (r *ReportRepo) Summary(userID, from, to string) (Summary, error) {
	var s Summary
	err := r.db.Get(&s, `
	  SELECT COALESCE(SUM(total_price),0) AS revenue,
	         COUNT(*)                     AS sale_count,
	         COALESCE(SUM(qty),0)         AS units_sold
	  FROM sales
	  WHERE user_id = ? AND date(sold_at) BETWEEN ? AND ?
	`, userID, from, to)
	return s, err
}

// Daily groups revenue by calendar day over the trailing window.
func (r *ReportRepo) Daily(userID string, days int) ([]Bucket, error) {
	var out []Bucket
	err := r.db.Select(&out, `
	  SELECT date(sold_at)                AS bucket,
	         COALESCE(SUM(total_price),0) AS revenue,
	         COUNT(*)                     AS sale_count
	  FROM sales
	  WHERE user_id = ? AND date(sold_at) >= date('now', ?)
	  GROUP BY bucket
	  ORDER BY bucket
	`, userID, fmt.Sprintf("-%d days", days-1))
	return out, err
}

// Weekly groups revenue by ISO-8601 week, newest first. %G-%V keeps the
// year-boundary days in the right bucket (a Dec 31 can belong to week 01
// of the next year).
func (r *ReportRepo) Weekly(userID string, weeks int) ([]Bucket, error) {
	var out []Bucket
	err := r.db.Select(&out, `
	  SELECT strftime('%G-%V', sold_at)   AS bucket,
	         COALESCE(SUM(total_price),0) AS revenue,
	         COUNT(*)                     AS sale_count
	  FROM sales
	  WHERE user_id = ?
	  GROUP BY bucket
	  ORDER BY bucket DESC
	  LIMIT ?
	`, userID, weeks)
	return out, err
}

// Monthly groups revenue by month within one year; the service zero-fills
// the missing months so callers always see 12 buckets.
func (r *ReportRepo) Monthly(userID string, year int) ([]Bucket, error) {
	var out []Bucket
	err := r.db.Select(&out, `
	  SELECT strftime('%m', sold_at)      AS bucket,
	         COALESCE(SUM(total_price),0) AS revenue,
	         COUNT(*)                     AS sale_count
	  FROM sales
	  WHERE user_id = ? AND strftime('%Y', sold_at) = ?
	  GROUP BY bucket
	  ORDER BY bucket
	`, userID, fmt.Sprintf("%04d", year))
	return out, err
}

// Yearly groups revenue by year across all history.
func (r *ReportRepo) Yearly(userID string) ([]Bucket, error) {
	var out []Bucket
	err := r.db.Select(&out, `
	  SELECT strftime('%Y', sold_at)      AS bucket,
	         COALESCE(SUM(total_price),0) AS revenue,
	         COUNT(*)                     AS sale_count
	  FROM sales
	  WHERE user_id = ?
	  GROUP BY bucket
	  ORDER BY bucket
	`, userID)
	return out, err
}

type TopProductRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	UnitsSold int     `db:"units_sold" json:"unitsSold"`
	Revenue   float64 `db:"revenue" json:"revenue"`
}

func (r *ReportRepo) TopProducts(userID string, limit int) ([]TopProductRow, error) {
	var out []TopProductRow
	err := r.db.Select(&out, `
	  SELECT s.product_id, p.name,
	         SUM(s.qty)         AS units_sold,
	         SUM(s.total_price) AS revenue
	  FROM sales s
	  JOIN products p ON p.id = s.product_id
	  WHERE s.user_id = ?
	  GROUP BY s.product_id, p.name
	  ORDER BY units_sold DESC, revenue DESC
	  LIMIT ?
	`, userID, limit)
	return out, err
}
