package usecase

import (
	"context"
	"errors"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
	"laundromat/internal/pkg/auth"
)

// AccountUseCase manages the admin and customer directories.
type AccountUseCase struct {
	admins    repository.AdminRepository
	customers repository.CustomerRepository
	guard     *auth.OperatorGuard
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(admins repository.AdminRepository, customers repository.CustomerRepository, guard *auth.OperatorGuard) *AccountUseCase {
	return &AccountUseCase{admins: admins, customers: customers, guard: guard}
}

// RegisterAdmin creates an operator account. Only the ledger's owner account
// holding the operator key may call it; an account already known as admin or
// customer is rejected so no account ever carries both roles.
func (u *AccountUseCase) RegisterAdmin(ctx context.Context, callerID, operatorKey, newAdminID string) (*model.Admin, error) {
	if err := ValidateAccountID(newAdminID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}
	if callerID != u.guard.Owner() {
		return nil, domainErrors.Unauthorized("only the owner account can register admins")
	}
	if err := u.guard.VerifyKey(operatorKey); err != nil {
		return nil, domainErrors.Unauthorized("operator key rejected")
	}

	if _, err := u.customers.Get(ctx, newAdminID); err == nil {
		return nil, domainErrors.Conflict("account %s is already registered as a customer", newAdminID)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	return u.admins.Create(ctx, newAdminID)
}

// RegisterCustomer creates a customer record for the calling account.
func (u *AccountUseCase) RegisterCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error) {
	if err := ValidateAccountID(callerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	if _, err := u.admins.Get(ctx, callerID); err == nil {
		return nil, domainErrors.Conflict("account %s is already registered as an admin", callerID)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	return u.customers.Create(ctx, callerID, profile)
}

// UpdateCustomer updates the calling account's own customer record with the
// same field rules as registration.
func (u *AccountUseCase) UpdateCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error) {
	if err := ValidateAccountID(callerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	existing, err := u.customers.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}
	// Unreachable with id-keyed lookup, kept as defense in depth.
	if existing.ID != callerID {
		return nil, domainErrors.Unauthorized("only the customer can update their details")
	}

	return u.customers.Update(ctx, callerID, profile)
}

// GetCustomer returns one customer record. Admins see anyone, customers only
// themselves.
func (u *AccountUseCase) GetCustomer(ctx context.Context, callerID, customerID string) (*model.Customer, error) {
	if err := ValidateAccountID(customerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	if callerID != customerID {
		isAdmin, err := u.IsAdmin(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, domainErrors.Unauthorized("not allowed to view this customer")
		}
	}

	return u.customers.Get(ctx, customerID)
}

// ListCustomers returns all customers. Admin only.
func (u *AccountUseCase) ListCustomers(ctx context.Context, callerID string) ([]model.Customer, error) {
	isAdmin, err := u.IsAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, domainErrors.Unauthorized("only admins can list customers")
	}
	return u.customers.List(ctx)
}

// ListAdmins returns all operator accounts.
func (u *AccountUseCase) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return u.admins.List(ctx)
}

// IsAdmin reports whether the account has an admin record.
func (u *AccountUseCase) IsAdmin(ctx context.Context, accountID string) (bool, error) {
	_, err := u.admins.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
