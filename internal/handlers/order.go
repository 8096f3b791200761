package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	UserID          uuid.UUID          `json:"user_id" binding:"required"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes"`
	Items           []orderItemRequest `json:"items" binding:"required"`
}

type updateOrderRequest struct {
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"payment_status"`
	ShippingAddress *string `json:"shipping_address"`
	Notes           *string `json:"notes"`
}

func (oh *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.CreateOrderCommand{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	created, err := oh.orderService.Create(c.Request.Context(), cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (oh *OrderHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	updated, err := oh.orderService.Update(c.Request.Context(), id, services.UpdateOrderCommand{
		Status:          req.Status,
		PaymentStatus:   req.PaymentStatus,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (oh *OrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	order, err := oh.orderService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, order)
}

func (oh *OrderHandler) List(c *gin.Context) {
	pagenum, pagesize, offset := pagination(c)
	orders, count, err := oh.orderService.List(c.Request.Context(), offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, orders, pageMeta(c, count, pagenum, pagesize))
}

func (oh *OrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := oh.orderService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Order deleted.")
}
