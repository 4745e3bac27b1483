package usecase

import (
	"fmt"

	"laundromat/internal/domain/model"
)

// Field limits shared by the create and update paths. Registration and update
// must stay behind the same predicates so no profile state is reachable by one
// path but not the other.
const (
	minAccountIDLen = 6
	minOrderIDLen   = 6
	minNameLen      = 3
	minAddressLen   = 6
	minPhoneLen     = 8

	// MinOrderPrice is the absolute price floor for any order.
	MinOrderPrice int64 = 3

	minWeightGrams = 1000
	maxWeightGrams = 10000
)

// ValidateAccountID checks the opaque account identifier.
func ValidateAccountID(id string) error {
	if len(id) < minAccountIDLen {
		return fmt.Errorf("account id is required")
	}
	return nil
}

// ValidateOrderID checks the caller-supplied order identifier.
func ValidateOrderID(id string) error {
	if len(id) < minOrderIDLen {
		return fmt.Errorf("order id is required")
	}
	return nil
}

// ValidateProfile checks the customer profile fields.
func ValidateProfile(p model.CustomerProfile) error {
	if len(p.Name) < minNameLen {
		return fmt.Errorf("customer name is required")
	}
	if len(p.FullAddress) < minAddressLen {
		return fmt.Errorf("customer address is required")
	}
	if len(p.Phone) < minPhoneLen {
		return fmt.Errorf("customer phone is required")
	}
	return nil
}

// ValidateWeight checks the declared order weight.
func ValidateWeight(grams int) error {
	if grams < minWeightGrams || grams > maxWeightGrams {
		return fmt.Errorf("weight must be between %d and %d grams", minWeightGrams, maxWeightGrams)
	}
	return nil
}

// MinPriceForWeight returns the price band minimum for a valid weight:
// up to 3 kg costs 3, up to 7 kg costs 7, up to 10 kg costs 10.
func MinPriceForWeight(grams int) int64 {
	switch {
	case grams <= 3000:
		return 3
	case grams <= 7000:
		return 7
	default:
		return 10
	}
}
