package domain

type Seller struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID        string  `db:"id" json:"id"`
	UserID    string  `db:"user_id" json:"-"`
	SellerID  string  `db:"seller_id" json:"sellerId,omitempty"`
	Name      string  `db:"name" json:"name"`
	Category  string  `db:"category" json:"category"`
	Brand     string  `db:"brand" json:"brand,omitempty"`
	Price     float64 `db:"price" json:"price"`
	Stock     int     `db:"stock" json:"stock"`
	Active    bool    `db:"active" json:"active"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
	UpdatedAt string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Purchase is the audit record of stock intake: one row per opening stock
// or later restock of a product.
type Purchase struct {
	ID          string  `db:"id" json:"id"`
	UserID      string  `db:"user_id" json:"-"`
	ProductID   string  `db:"product_id" json:"productId"`
	Qty         int     `db:"qty" json:"qty"`
	UnitCost    float64 `db:"unit_cost" json:"unitCost"`
	TotalCost   float64 `db:"total_cost" json:"totalCost"`
	PurchasedAt string  `db:"purchased_at" json:"purchasedAt"`
}

type Sale struct {
	ID           string  `db:"id" json:"id"`
	UserID       string  `db:"user_id" json:"-"`
	ProductID    string  `db:"product_id" json:"productId"`
	Qty          int     `db:"qty" json:"qty"`
	TotalPrice   float64 `db:"total_price" json:"totalPrice"`
	BuyerName    string  `db:"buyer_name" json:"buyerName"`
	BuyerContact string  `db:"buyer_contact" json:"buyerContact,omitempty"`
	SoldAt       string  `db:"sold_at" json:"soldAt"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
