package models

// SupplierInventory is the stock held for one supplier.
type SupplierInventory struct {
	Supplier string `json:"supplier"`
	Quantity int    `json:"quantity"`
	Value    string `json:"value"`
}

// TopProduct is one entry of the best sellers list.
type TopProduct struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Sales   int    `json:"sales"`
	Revenue string `json:"revenue"`
}

// StockStatus buckets products by how much stock they have left.
type StockStatus struct {
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// InventoryReport is the payload of GET /api/products/reports.
type InventoryReport struct {
	InventoryBySupplier []SupplierInventory `json:"inventoryBySupplier"`
	TopProducts         []TopProduct        `json:"topProducts"`
	StockStatus         StockStatus         `json:"stockStatus"`
}
