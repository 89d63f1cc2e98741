package handlers

// StartCheckoutRequest begins a sale against a location.
type StartCheckoutRequest struct {
	// Location is "main_warehouse", "branch:<id>" or a bare branch id.
	Location string  `json:"location" binding:"required" example:"branch:1"`
	Quantity int     `json:"quantity" binding:"required,min=1" example:"2"`
	Amount   float64 `json:"amount" binding:"required,gt=0" example:"25980"`
}

// StartCheckoutResponse carries the redirect handle for the payment page.
type StartCheckoutResponse struct {
	Token string `json:"token" example:"tok-1726000000000000000"`
	URL   string `json:"url" example:"http://localhost:8080/simulator/pay?token=tok-1726000000000000000"`
}

// SaleRequest debits stock directly, without a payment flow.
type SaleRequest struct {
	Location string `json:"location" binding:"required" example:"branch:2"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"1"`
}

// SaleResponse reports the result of a direct debit.
type SaleResponse struct {
	Location     string `json:"location" example:"branch:2"`
	LocationName string `json:"location_name" example:"Sucursal 2"`
	Quantity     int    `json:"quantity" example:"1"`
	Remaining    int    `json:"remaining" example:"22"`
}

// RestockRequest resets every branch and the warehouse to fixed quantities.
type RestockRequest struct {
	BranchQuantity    int `json:"branch_quantity" binding:"min=0" example:"100"`
	WarehouseQuantity int `json:"warehouse_quantity" binding:"min=0" example:"999"`
}

// AddBranchRequest registers a new branch.
type AddBranchRequest struct {
	Name     string `json:"name" binding:"required" example:"Sucursal 4"`
	Quantity int    `json:"quantity" binding:"min=0" example:"50"`
	Price    int    `json:"price" binding:"min=0" example:"1290"`
}

// AddBranchResponse returns the id of the created branch.
type AddBranchResponse struct {
	ID       int64  `json:"id" example:"4"`
	Name     string `json:"name" example:"Sucursal 4"`
	Quantity int    `json:"quantity" example:"50"`
	Price    int    `json:"price" example:"1290"`
}

// ConvertRequest converts a CLP amount to USD.
type ConvertRequest struct {
	AmountCLP float64 `json:"amount_clp" binding:"required,gt=0" example:"12990"`
}

// ConvertResponse carries the converted amount and the rate applied.
type ConvertResponse struct {
	AmountCLP float64 `json:"amount_clp" example:"12990"`
	AmountUSD float64 `json:"amount_usd" example:"14.43"`
	Rate      float64 `json:"rate" example:"900"`
}

// ErrorResponse is the standard error shape.
type ErrorResponse struct {
	Error   string `json:"error" example:"InsufficientStock"`
	Message string `json:"message" example:"insufficient stock available"`
	Details string `json:"details" example:"Available: 1, Requested: 5"`
}
