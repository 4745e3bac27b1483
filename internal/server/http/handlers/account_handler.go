package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laundromat/internal/domain/model"
	"laundromat/internal/server/http/dto"
	"laundromat/internal/server/http/middleware"
)

// AccountHandler manages directory endpoints and the project info page.
type AccountHandler struct {
	facade LaundryFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade LaundryFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// About handles GET /api/about.
func (h *AccountHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"about": h.facade.About()})
}

// ListAdmins handles GET /api/admins.
func (h *AccountHandler) ListAdmins(c *gin.Context) {
	admins, err := h.facade.Admins(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.AdminResponse, 0, len(admins))
	for _, a := range admins {
		response = append(response, toAdminResponse(a))
	}
	c.JSON(http.StatusOK, response)
}

// RegisterAdmin handles POST /api/admins.
func (h *AccountHandler) RegisterAdmin(c *gin.Context) {
	var req dto.AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	admin, err := h.facade.RegisterAdmin(
		c.Request.Context(),
		CurrentAccountID(c),
		c.GetHeader(middleware.OperatorKeyHeader),
		req.AdminID,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAdminResponse(*admin))
}

// RegisterCustomer handles POST /api/customers.
func (h *AccountHandler) RegisterCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, err := h.facade.RegisterCustomer(c.Request.Context(), CurrentAccountID(c), toProfile(req))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCustomerResponse(*customer))
}

// UpdateCustomer handles PUT /api/customers.
func (h *AccountHandler) UpdateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, err := h.facade.UpdateCustomer(c.Request.Context(), CurrentAccountID(c), toProfile(req))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// GetCustomer handles GET /api/customers/:id.
func (h *AccountHandler) GetCustomer(c *gin.Context) {
	customer, err := h.facade.Customer(c.Request.Context(), CurrentAccountID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// ListCustomers handles GET /api/customers.
func (h *AccountHandler) ListCustomers(c *gin.Context) {
	customers, err := h.facade.Customers(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		response = append(response, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, response)
}

func toProfile(req dto.CustomerRequest) model.CustomerProfile {
	return model.CustomerProfile{
		Name:        req.Name,
		FullAddress: req.FullAddress,
		Landmark:    req.Landmark,
		MapCode:     req.MapCode,
		Phone:       req.Phone,
		Email:       req.Email,
	}
}

func toCustomerResponse(customer model.Customer) dto.CustomerResponse {
	orderIDs := customer.OrderIDs
	if orderIDs == nil {
		orderIDs = []string{}
	}
	return dto.CustomerResponse{
		ID:          customer.ID,
		Name:        customer.Name,
		FullAddress: customer.FullAddress,
		Landmark:    customer.Landmark,
		MapCode:     customer.MapCode,
		Phone:       customer.Phone,
		Email:       customer.Email,
		Role:        string(customer.Role),
		OrderIDs:    orderIDs,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}

func toAdminResponse(admin model.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:        admin.ID,
		Role:      string(admin.Role),
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}
