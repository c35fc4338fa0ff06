package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
)

var ErrNoSuchSeller = errors.New("seller not found")

type ProductService struct {
	DB        repos.TxStarter
	Prods     *repos.ProductRepo
	Purchases *repos.PurchaseRepo
	Sellers   *repos.SellerRepo
	// LowStock is the threshold below which a product counts as LOW_STOCK.
	LowStock int
}

func NewProductService(db repos.TxStarter, prods *repos.ProductRepo, purchases *repos.PurchaseRepo, sellers *repos.SellerRepo, lowStock int) *ProductService {
	if lowStock <= 0 {
		lowStock = 5
	}
	return &ProductService{DB: db, Prods: prods, Purchases: purchases, Sellers: sellers, LowStock: lowStock}
}

type NewProduct struct {
	Name     string
	Category string
	Brand    string
	SellerID string
	Price    float64
	Stock    int
	UnitCost float64
}

// Create inserts the product and, when it arrives with opening stock, the
// purchase documenting that intake. Both writes commit or neither does.
func (s *ProductService) Create(userID string, in NewProduct) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Brand = strings.TrimSpace(in.Brand)
	if in.Name == "" || in.Category == "" {
		return domain.Product{}, errors.New("missing name or category")
	}
	if in.Price < 0 || in.Stock < 0 || in.UnitCost < 0 {
		return domain.Product{}, errors.New("negative price, stock or cost")
	}
	if in.SellerID != "" {
		if _, err := s.Sellers.Get(userID, in.SellerID); err != nil {
			if err == sql.ErrNoRows {
				return domain.Product{}, ErrNoSuchSeller
			}
			return domain.Product{}, err
		}
	}

	p := domain.Product{
		ID:       uuid.NewString(),
		UserID:   userID,
		SellerID: in.SellerID,
		Name:     in.Name,
		Category: in.Category,
		Brand:    in.Brand,
		Price:    in.Price,
		Stock:    in.Stock,
		Active:   true,
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Prods.Insert(tx, p); err != nil {
		return domain.Product{}, err
	}
	if in.Stock > 0 {
		pu := domain.Purchase{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: p.ID,
			Qty:       in.Stock,
			UnitCost:  in.UnitCost,
			TotalCost: in.UnitCost * float64(in.Stock),
		}
		if err := s.Purchases.Insert(tx, pu); err != nil {
			return domain.Product{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// AddStock increments stock and records the purchase in one transaction.
func (s *ProductService) AddStock(userID, productID string, qty int, unitCost float64) (domain.Purchase, error) {
	if qty < 1 {
		return domain.Purchase{}, errors.New("qty must be at least 1")
	}
	if unitCost < 0 {
		return domain.Purchase{}, errors.New("negative unit cost")
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Purchase{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Prods.IncrementStock(tx, userID, productID, qty); err != nil {
		return domain.Purchase{}, err
	}
	pu := domain.Purchase{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Qty:       qty,
		UnitCost:  unitCost,
		TotalCost: unitCost * float64(qty),
	}
	if err := s.Purchases.Insert(tx, pu); err != nil {
		return domain.Purchase{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Purchase{}, err
	}
	return pu, nil
}

func (s *ProductService) Get(userID, id string) (domain.Product, error) {
	return s.Prods.Get(userID, id)
}

func (s *ProductService) List(userID, category, sellerID string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(userID, category, sellerID, pageSize, offset)
}

func (s *ProductService) Search(userID, q string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(userID, strings.ToLower(q), pageSize, offset)
}

func (s *ProductService) Update(userID, id string, p domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	if p.Name == "" || p.Category == "" {
		return errors.New("missing name or category")
	}
	if p.Price < 0 {
		return errors.New("negative price")
	}
	return s.Prods.Update(userID, id, p)
}

func (s *ProductService) Delete(userID, id string) error {
	return s.Prods.Delete(userID, id)
}

// CheckAvailability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *ProductService) CheckAvailability(userID, productID string) (domain.Availability, error) {
	qty, err := s.Prods.Stock(userID, productID)
	if err != nil {
		// If no product row exists, treat as 0.
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= s.LowStock:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}
