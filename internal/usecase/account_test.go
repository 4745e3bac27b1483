package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/pkg/auth"
	testhelpers "laundromat/internal/test"
)

const (
	ownerAccount = "owner.laundry"
	operatorKey  = "master-key"
)

func newAccountUseCase(admins *testhelpers.AdminRepositoryStub, customers *testhelpers.CustomerRepositoryStub) *AccountUseCase {
	guard := auth.NewOperatorGuard(ownerAccount, "hash:"+operatorKey, testhelpers.KeyVerifierStub{})
	return NewAccountUseCase(admins, customers, guard)
}

func validProfile() model.CustomerProfile {
	return model.CustomerProfile{Name: "Alice", FullAddress: "12 Main Street", Phone: "87654321"}
}

func TestRegisterAdminSuccess(t *testing.T) {
	admins := testhelpers.NewAdminRepositoryStub()
	uc := newAccountUseCase(admins, testhelpers.NewCustomerRepositoryStub())

	admin, err := uc.RegisterAdmin(context.Background(), ownerAccount, operatorKey, "admin.bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID != "admin.bob" || admin.Role != model.RoleAdmin {
		t.Fatalf("unexpected admin: %+v", admin)
	}
	if _, ok := admins.Admins["admin.bob"]; !ok {
		t.Fatal("expected admin to be stored")
	}
}

func TestRegisterAdminFailures(t *testing.T) {
	cases := []struct {
		name     string
		callerID string
		key      string
		newID    string
		kind     error
	}{
		{"short id", ownerAccount, operatorKey, "abc", domainErrors.ErrValidation},
		{"caller is not owner", "admin.bob", operatorKey, "admin.carol", domainErrors.ErrUnauthorized},
		{"wrong operator key", ownerAccount, "guessed", "admin.carol", domainErrors.ErrUnauthorized},
		{"empty operator key", ownerAccount, "", "admin.carol", domainErrors.ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			admins := testhelpers.NewAdminRepositoryStub()
			uc := newAccountUseCase(admins, testhelpers.NewCustomerRepositoryStub())
			if _, err := uc.RegisterAdmin(context.Background(), tc.callerID, tc.key, tc.newID); !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
			if len(admins.Admins) != 0 {
				t.Fatal("expected no admin to be stored")
			}
		})
	}
}

func TestRegisterAdminRoleConflicts(t *testing.T) {
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub("admin.bob"), testhelpers.NewCustomerRepositoryStub())
	if _, err := uc.RegisterAdmin(context.Background(), ownerAccount, operatorKey, "admin.bob"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for existing admin, got %v", err)
	}

	uc = newAccountUseCase(testhelpers.NewAdminRepositoryStub(), testhelpers.NewCustomerRepositoryStub("customer.alice"))
	if _, err := uc.RegisterAdmin(context.Background(), ownerAccount, operatorKey, "customer.alice"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for account registered as customer, got %v", err)
	}
}

func TestRegisterCustomer(t *testing.T) {
	customers := testhelpers.NewCustomerRepositoryStub()
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub(), customers)

	id := testhelpers.RandomAccountID("customer")
	customer, err := uc.RegisterCustomer(context.Background(), id, validProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.ID != id || customer.Role != model.RoleCustomer {
		t.Fatalf("unexpected customer: %+v", customer)
	}

	if _, err := uc.RegisterCustomer(context.Background(), id, validProfile()); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for duplicate registration, got %v", err)
	}
}

func TestRegisterCustomerFailures(t *testing.T) {
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub("admin.bob"), testhelpers.NewCustomerRepositoryStub())

	if _, err := uc.RegisterCustomer(context.Background(), "admin.bob", validProfile()); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for account registered as admin, got %v", err)
	}
	if _, err := uc.RegisterCustomer(context.Background(), "abc", validProfile()); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for short id, got %v", err)
	}

	profile := validProfile()
	profile.Name = "Al"
	if _, err := uc.RegisterCustomer(context.Background(), "customer.alice", profile); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for short name, got %v", err)
	}
}

func TestUpdateCustomer(t *testing.T) {
	customers := testhelpers.NewCustomerRepositoryStub("customer.alice")
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub(), customers)

	profile := validProfile()
	profile.Name = "Alice Updated"
	customer, err := uc.UpdateCustomer(context.Background(), "customer.alice", profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.Name != "Alice Updated" {
		t.Fatalf("expected updated name, got %q", customer.Name)
	}

	if _, err := uc.UpdateCustomer(context.Background(), "customer.carol", profile); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown customer, got %v", err)
	}

	profile.Phone = "1234"
	if _, err := uc.UpdateCustomer(context.Background(), "customer.alice", profile); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for short phone, got %v", err)
	}
}

func TestGetCustomerVisibility(t *testing.T) {
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub("admin.bob"), testhelpers.NewCustomerRepositoryStub("customer.alice", "customer.carol"))

	if _, err := uc.GetCustomer(context.Background(), "customer.alice", "customer.alice"); err != nil {
		t.Fatalf("expected self lookup to succeed: %v", err)
	}
	if _, err := uc.GetCustomer(context.Background(), "admin.bob", "customer.alice"); err != nil {
		t.Fatalf("expected admin lookup to succeed: %v", err)
	}
	if _, err := uc.GetCustomer(context.Background(), "customer.carol", "customer.alice"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for another customer, got %v", err)
	}
	if _, err := uc.GetCustomer(context.Background(), "admin.bob", "abc"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for short id, got %v", err)
	}
}

func TestListCustomers(t *testing.T) {
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub("admin.bob"), testhelpers.NewCustomerRepositoryStub("customer.alice"))

	customers, err := uc.ListCustomers(context.Background(), "admin.bob")
	if err != nil || len(customers) != 1 {
		t.Fatalf("unexpected result: %v err=%v", customers, err)
	}
	if _, err := uc.ListCustomers(context.Background(), "customer.alice"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for customer, got %v", err)
	}
}

func TestListAdminsIsPublic(t *testing.T) {
	uc := newAccountUseCase(testhelpers.NewAdminRepositoryStub("admin.bob"), testhelpers.NewCustomerRepositoryStub())
	admins, err := uc.ListAdmins(context.Background())
	if err != nil || len(admins) != 1 {
		t.Fatalf("unexpected result: %v err=%v", admins, err)
	}
}

func TestIsAdmin(t *testing.T) {
	admins := testhelpers.NewAdminRepositoryStub("admin.bob")
	uc := newAccountUseCase(admins, testhelpers.NewCustomerRepositoryStub())

	if ok, err := uc.IsAdmin(context.Background(), "admin.bob"); err != nil || !ok {
		t.Fatalf("expected admin, got ok=%v err=%v", ok, err)
	}
	if ok, err := uc.IsAdmin(context.Background(), "customer.alice"); err != nil || ok {
		t.Fatalf("expected non-admin, got ok=%v err=%v", ok, err)
	}

	admins.Err = errors.New("storage down")
	if _, err := uc.IsAdmin(context.Background(), "admin.bob"); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}
