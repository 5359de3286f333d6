package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	AccessCode string `json:"access_code"`
}

type LoginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"data"`
}

type RegisterRequest struct {
	Name       string `json:"name"`
	AccessCode string `json:"access_code"`
}

type RegisterResponse struct {
	Status string `json:"status"`
	Data   struct {
		IdentityID string `json:"identity_id"`
		Name       string `json:"name"`
		CreatedAt  string `json:"created_at"`
	} `json:"data"`
}
