package order

// OrderRequest represents the input for creating or updating an order.
// OrderDate is an ISO 8601 timestamp string.
type OrderRequest struct {
	CustomerName string  `json:"customerName" binding:"required,min=2,max=100"`
	Total        float64 `json:"total" binding:"required,gt=0"`
	Status       string  `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
	OrderDate    string  `json:"orderDate" binding:"required"`
	Notes        string  `json:"notes" binding:"omitempty,max=1000"`
}
