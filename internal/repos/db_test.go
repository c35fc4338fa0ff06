package repos_test

import (
	"context"
	"path/filepath"
	"testing"

	"stockroom/internal/repos"
)

// Foreign keys must hold on every pooled connection of a file database, not
// only the one that ran the schema.
func TestOpenDBFileEnforcesForeignKeys(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "stockroom.db")
	db, err := repos.OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// a sale referencing a seeded product
	if _, err := db.Exec(`
		INSERT INTO sales(id,user_id,product_id,qty,total_price,buyer_name)
		VALUES('s-fk','u-demo','prd-kb-001',1,89.99,'Alice')`); err != nil {
		t.Fatal(err)
	}

	// hold one connection so the statements below run on a fresh one
	conn, err := db.Conn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var fk int
	if err := db.Get(&fk, `PRAGMA foreign_keys`); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("want foreign_keys=1 on a fresh connection, got %d", fk)
	}

	if _, err := db.Exec(`DELETE FROM products WHERE id = 'prd-kb-001'`); err == nil {
		t.Fatal("want delete to fail while a sale references the product")
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products WHERE id = 'prd-kb-001'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("referenced product row is gone")
	}
}
