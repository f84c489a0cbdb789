package types

// BillItem is one line item on a bill
type BillItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Bill represents a patient bill
type Bill struct {
	ID         string      `json:"_id"`
	Patient    *PatientRef `json:"patient"`
	Items      []BillItem  `json:"items"`
	Subtotal   float64     `json:"subtotal"`
	Tax        float64     `json:"tax"`
	Discount   float64     `json:"discount"`
	Total      float64     `json:"total"`
	AmountPaid float64     `json:"amountPaid"`
	Status     string      `json:"status"`
	Date       string      `json:"date"`
}

// BillRequest is the payload sent to create or update a bill
type BillRequest struct {
	Patient  string     `json:"patient"`
	Items    []BillItem `json:"items"`
	Tax      float64    `json:"tax"`
	Discount float64    `json:"discount"`
	Date     string     `json:"date"`
}

// PaymentRequest records a payment against a bill
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}
