package model

import "time"

// Customer owns its products exclusively; products own their installments.
// Nothing references an installment from outside its product except the
// portal lookup path, which resolves a portal ID back to (customer, product).
type Customer struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Products  []Product `json:"products"`
	CreatedAt time.Time `json:"createdAt"`
}
