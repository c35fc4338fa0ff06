package handlers_test

import (
	"net/http"
	"testing"
)

// Seeded demo data: product prd-kb-001 priced 89.99 with stock 12, owned by
// the demo user.

func TestSaleFlowDecrementsStock(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)
	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	resp := s.do("POST", "/api/v1/sales", map[string]any{
		"productId": "prd-kb-001",
		"qty":       2,
		"buyerName": "Walk-in",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var sale struct {
		ID         string  `json:"id"`
		TotalPrice float64 `json:"totalPrice"`
	}
	decode(t, resp, &sale)
	if sale.ID == "" {
		t.Fatal("no sale id")
	}
	if sale.TotalPrice != 179.98 {
		t.Fatalf("want server total 179.98, got %v", sale.TotalPrice)
	}

	// stock decremented from 12 to 10
	var avail struct {
		Status string `json:"status"`
		Qty    int    `json:"qty"`
	}
	resp = s.do("GET", "/api/v1/availability?productId=prd-kb-001", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("availability: want 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &avail)
	if avail.Status != "IN_STOCK" || avail.Qty != 10 {
		t.Fatalf("want IN_STOCK(10), got %+v", avail)
	}
}

func TestSaleInsufficientStock(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)
	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	resp := s.do("POST", "/api/v1/sales", map[string]any{
		"productId": "prd-kb-001",
		"qty":       500,
		"buyerName": "Greedy",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}

	// nothing decremented
	var avail struct {
		Qty int `json:"qty"`
	}
	resp = s.do("GET", "/api/v1/availability?productId=prd-kb-001", nil)
	decode(t, resp, &avail)
	if avail.Qty != 12 {
		t.Fatalf("want qty=12 after failed sale, got %d", avail.Qty)
	}
}

func TestAddStockRecordsPurchase(t *testing.T) {
	app, db := newTestApp(t)
	s := newSession(t, app)
	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	// monitor seeded with stock 0
	resp := s.do("POST", "/api/v1/products/prd-mn-001/stock", map[string]any{
		"qty": 4, "unitCost": 170.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}

	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id='prd-mn-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 4 {
		t.Fatalf("want stock=4, got %d", stock)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM purchases WHERE product_id='prd-mn-001'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 purchase row, got %d", n)
	}
}

func TestReportSummaryAfterSales(t *testing.T) {
	app, _ := newTestApp(t)
	s := newSession(t, app)
	if resp := s.login("demo@stockroom.test", "Passw0rd!"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	for i := 0; i < 3; i++ {
		resp := s.do("POST", "/api/v1/sales", map[string]any{
			"productId": "prd-ms-001",
			"qty":       1,
			"buyerName": "Regular",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("sale: want 201, got %d", resp.StatusCode)
		}
	}

	var sum struct {
		Revenue   float64 `json:"revenue"`
		SaleCount int     `json:"saleCount"`
	}
	resp := s.do("GET", "/api/v1/reports/summary", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: want 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &sum)
	if sum.SaleCount != 3 {
		t.Fatalf("want 3 sales, got %d", sum.SaleCount)
	}
	if sum.Revenue != 118.50 {
		t.Fatalf("want revenue 118.50, got %v", sum.Revenue)
	}
}
