package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

var ErrNoSuchProduct = errors.New("product not found")

type Buyer struct {
	Name    string
	Contact string
}

type SaleService struct {
	DB    repos.TxStarter
	Prods *repos.ProductRepo
	Sales *repos.SaleRepo
}

func NewSaleService(db repos.TxStarter, prods *repos.ProductRepo, sales *repos.SaleRepo) *SaleService {
	return &SaleService{DB: db, Prods: prods, Sales: sales}
}

// Create records a sale and decrements stock in one transaction. The total is
// computed server-side from the current product price; the caller's total, if
// sent, is only compared for the audit trail.
func (s *SaleService) Create(userID, productID string, qty int, buyer Buyer) (domain.Sale, error) {
	if qty < 1 {
		return domain.Sale{}, errors.New("qty must be at least 1")
	}
	buyer.Name = strings.TrimSpace(buyer.Name)
	if buyer.Name == "" {
		return domain.Sale{}, errors.New("missing buyer name")
	}

	p, err := s.Prods.Get(userID, productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Sale{}, ErrNoSuchProduct
		}
		return domain.Sale{}, err
	}
	// pre-check stock for a friendlier error than the guarded UPDATE gives
	if p.Stock < qty {
		return domain.Sale{}, fmt.Errorf("insufficient stock for %s (need %d, have %d)", productID, qty, p.Stock)
	}

	sale := domain.Sale{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductID:    productID,
		Qty:          qty,
		TotalPrice:   p.Price * float64(qty),
		BuyerName:    buyer.Name,
		BuyerContact: strings.TrimSpace(buyer.Contact),
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Sale{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Prods.DecrementStock(tx, userID, productID, qty); err != nil {
		return domain.Sale{}, err
	}
	if err := s.Sales.Insert(tx, sale); err != nil {
		return domain.Sale{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

func (s *SaleService) Get(userID, id string) (domain.Sale, error) {
	return s.Sales.Get(userID, id)
}

func (s *SaleService) List(userID string, page, pageSize int) ([]domain.Sale, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Sales.List(userID, pageSize, offset)
}

func (s *SaleService) ListByProduct(userID, productID string) ([]domain.Sale, error) {
	return s.Sales.ListByProduct(userID, productID)
}
