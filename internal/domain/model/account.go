package model

import "time"

// Role describes what an account is allowed to do.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Admin represents an operator account. Admins are created only through the
// privileged owner bootstrap and are never deleted.
type Admin struct {
	ID        string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer represents a registered customer account. OrderIDs is the ordered
// list of orders the customer has placed, oldest first.
type Customer struct {
	ID          string
	Name        string
	FullAddress string
	Landmark    string
	MapCode     string
	Phone       string
	Email       string
	Role        Role
	OrderIDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CustomerProfile carries the mutable customer fields shared by registration
// and update so both paths validate identically.
type CustomerProfile struct {
	Name        string
	FullAddress string
	Landmark    string
	MapCode     string
	Phone       string
	Email       string
}
