package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade LaundryFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade LaundryFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceOrder(
		c.Request.Context(),
		CurrentAccountID(c),
		req.ID,
		req.Description,
		req.WeightGrams,
		req.AttachedValue,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentAccountID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListForCustomer handles GET /api/customers/:id/orders.
func (h *OrderHandler) ListForCustomer(c *gin.Context) {
	orders, err := h.facade.OrdersForCustomer(c.Request.Context(), CurrentAccountID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		abortWithError(c, domainErrors.Validation("%v", err))
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentAccountID(c), c.Param("id"), status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Feedback handles POST /api/orders/:id/feedback.
func (h *OrderHandler) Feedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.SubmitFeedback(c.Request.Context(), CurrentAccountID(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		Description:     order.Description,
		WeightGrams:     order.WeightGrams,
		PriceNear:       order.PriceNear,
		PaymentType:     string(order.PaymentType),
		Status:          string(order.Status),
		Feedback:        string(order.Feedback),
		FeedbackComment: order.FeedbackComment,
		PickupAt:        order.PickupAt,
		DeliveredAt:     order.DeliveredAt,
	}
}
