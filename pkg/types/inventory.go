package types

// InventoryItem represents a stocked item
type InventoryItem struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	ReorderLevel int     `json:"reorderLevel"`
	Supplier     string  `json:"supplier,omitempty"`
	ExpiryDate   string  `json:"expiryDate,omitempty"`
}

// InventoryRequest is the payload sent to create or update an item
type InventoryRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	ReorderLevel int     `json:"reorderLevel"`
	Supplier     string  `json:"supplier,omitempty"`
	ExpiryDate   string  `json:"expiryDate,omitempty"`
}

// RestockRequest adds stock to an existing item
type RestockRequest struct {
	Quantity int `json:"quantity"`
}
