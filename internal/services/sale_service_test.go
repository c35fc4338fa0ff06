package services_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stockroom/internal/repos"
	"stockroom/internal/services"
)

func newSaleFixture(t *testing.T) (*sqlx.DB, *services.SaleService, string) {
	t.Helper()
	db := memdb(t)
	prodSvc := newProductService(db)

	p, err := prodSvc.Create("u-1", services.NewProduct{
		Name: "Mechanical Keyboard", Category: "peripherals", Price: 89.99, Stock: 5, UnitCost: 55,
	})
	if err != nil {
		t.Fatal(err)
	}

	saleSvc := services.NewSaleService(db, repos.NewProductRepo(db), repos.NewSaleRepo(db))
	return db, saleSvc, p.ID
}

func TestSaleService_CreateDecrementsStock(t *testing.T) {
	db, svc, pid := newSaleFixture(t)

	sale, err := svc.Create("u-1", pid, 2, services.Buyer{Name: "Alice", Contact: "alice@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if sale.ID == "" {
		t.Fatal("no sale id")
	}
	if sale.TotalPrice != 179.98 {
		t.Fatalf("want server total 179.98, got %v", sale.TotalPrice)
	}

	// stock decremented from 5 to 3
	stock, err := repos.NewProductRepo(db).Stock("u-1", pid)
	if err != nil {
		t.Fatal(err)
	}
	if stock != 3 {
		t.Fatalf("want stock=3, got %d", stock)
	}
}

func TestSaleService_InsufficientStock(t *testing.T) {
	db, svc, pid := newSaleFixture(t)

	_, err := svc.Create("u-1", pid, 9, services.Buyer{Name: "Bob"})
	if err == nil {
		t.Fatal("want insufficient stock error")
	}
	if !strings.Contains(err.Error(), "insufficient stock") {
		t.Fatalf("unexpected error: %v", err)
	}

	// nothing committed: stock untouched, no sale row
	stock, err := repos.NewProductRepo(db).Stock("u-1", pid)
	if err != nil {
		t.Fatal(err)
	}
	if stock != 5 {
		t.Fatalf("want stock=5 after failed sale, got %d", stock)
	}
	sales, err := repos.NewSaleRepo(db).List("u-1", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 0 {
		t.Fatalf("want no sales, got %d", len(sales))
	}
}

func TestSaleService_UnknownProduct(t *testing.T) {
	_, svc, _ := newSaleFixture(t)

	_, err := svc.Create("u-1", "prd-missing", 1, services.Buyer{Name: "Carol"})
	if err != services.ErrNoSuchProduct {
		t.Fatalf("want ErrNoSuchProduct, got %v", err)
	}
}

func TestSaleService_CannotSellAnotherUsersProduct(t *testing.T) {
	_, svc, pid := newSaleFixture(t)

	_, err := svc.Create("u-2", pid, 1, services.Buyer{Name: "Mallory"})
	if err != services.ErrNoSuchProduct {
		t.Fatalf("want ErrNoSuchProduct for foreign product, got %v", err)
	}
}

func TestSaleService_SellToZero(t *testing.T) {
	db, svc, pid := newSaleFixture(t)

	if _, err := svc.Create("u-1", pid, 5, services.Buyer{Name: "Dave"}); err != nil {
		t.Fatal(err)
	}
	stock, err := repos.NewProductRepo(db).Stock("u-1", pid)
	if err != nil {
		t.Fatal(err)
	}
	if stock != 0 {
		t.Fatalf("want stock=0, got %d", stock)
	}

	// and not one unit more
	if _, err := svc.Create("u-1", pid, 1, services.Buyer{Name: "Dave"}); err == nil {
		t.Fatal("want insufficient stock error at zero")
	}
}
