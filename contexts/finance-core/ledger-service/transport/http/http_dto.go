package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TransactionItem struct {
	TransactionID   string  `json:"transaction_id"`
	OwnerIdentityID string  `json:"owner_identity_id"`
	OwnerName       string  `json:"owner_name,omitempty"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	Kind            string  `json:"kind"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
}

type ListTransactionsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Transactions []TransactionItem `json:"transactions"`
	} `json:"data"`
}

type CreateTransactionRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Date        string  `json:"date,omitempty"`
}

type CreateTransactionResponse struct {
	Status string          `json:"status"`
	Data   TransactionItem `json:"data"`
}

type DeleteTransactionResponse struct {
	Status string `json:"status"`
	Data   struct {
		DeletedCount int64 `json:"deleted_count"`
	} `json:"data"`
}
