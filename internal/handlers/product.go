package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type createProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Quantity    int         `json:"quantity"`
	Weight      float64     `json:"weight"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type updateProductRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Price       *float64              `json:"price"`
	Quantity    *int                  `json:"quantity"`
	Weight      *float64              `json:"weight"`
	State       *int                  `json:"state"`
	HotQuantity *int                  `json:"hot_quantity"`
	IsPromote   *bool                 `json:"is_promote"`
	CategoryIDs optional[[]uuid.UUID] `json:"category_ids"`
}

func (ph *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("name", "Name is required."))
		return
	}
	created, err := ph.productService.Create(c.Request.Context(), services.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Weight:      req.Weight,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ph *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.UpdateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Weight:      req.Weight,
		State:       req.State,
		HotQuantity: req.HotQuantity,
		IsPromote:   req.IsPromote,
	}
	if req.CategoryIDs.Set {
		cmd.CategoriesSet = true
		if req.CategoryIDs.Value != nil {
			cmd.CategoryIDs = *req.CategoryIDs.Value
		}
	}
	updated, err := ph.productService.Update(c.Request.Context(), id, cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ph *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	product, err := ph.productService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, product)
}

func (ph *ProductHandler) List(c *gin.Context) {
	pagenum, pagesize, offset := pagination(c)
	products, count, err := ph.productService.List(c.Request.Context(), offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, products, pageMeta(c, count, pagenum, pagesize))
}

func (ph *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ph.productService.SoftDelete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Product deleted.")
}
