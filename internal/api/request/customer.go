package request

// CreateCustomerRequest represents the request body for registering a customer
type CreateCustomerRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateCustomerRequest represents the request body for updating a customer's profile
type UpdateCustomerRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}
