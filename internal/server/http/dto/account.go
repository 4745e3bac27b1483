package dto

import "time"

// CustomerRequest describes the registration/update payload.
type CustomerRequest struct {
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
	Landmark    string `json:"landmark"`
	MapCode     string `json:"map_code"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// CustomerResponse describes a customer record.
type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FullAddress string    `json:"full_address"`
	Landmark    string    `json:"landmark"`
	MapCode     string    `json:"map_code,omitempty"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	OrderIDs    []string  `json:"order_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminRequest describes the privileged admin registration payload.
type AdminRequest struct {
	AdminID string `json:"admin_id"`
}

// AdminResponse describes an operator account.
type AdminResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
