package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type updateCategoryRequest struct {
	Name      *string          `json:"name"`
	ParentID  optional[string] `json:"parent_id"`
	IsDeleted *bool            `json:"is_deleted"`
}

func (ch *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("name", "Name is required."))
		return
	}
	created, err := ch.categoryService.Insert(c.Request.Context(), services.CreateCategoryCommand{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ch *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.UpdateCategoryCommand{
		Name:      req.Name,
		IsDeleted: req.IsDeleted,
	}
	if req.ParentID.Set {
		cmd.ParentSet = true
		if req.ParentID.Value != nil {
			parentID, err := uuid.Parse(*req.ParentID.Value)
			if err != nil {
				RespondError(c, apierr.ValidationField("parent_id", "Invalid parent_id."))
				return
			}
			cmd.ParentID = &parentID
		}
	}
	updated, err := ch.categoryService.Update(c.Request.Context(), id, cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *CategoryHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	cat, err := ch.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, cat)
}

func (ch *CategoryHandler) List(c *gin.Context) {
	level := services.NormalizeCategoryLevel(c.Query("level"))
	pagenum, pagesize, offset := pagination(c)
	cats, count, err := ch.categoryService.List(c.Request.Context(), level, offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, cats, pageMeta(c, count, pagenum, pagesize))
}

func (ch *CategoryHandler) ListDeleted(c *gin.Context) {
	pagenum, pagesize, offset := pagination(c)
	cats, count, err := ch.categoryService.ListDeleted(c.Request.Context(), offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, cats, pageMeta(c, count, pagenum, pagesize))
}

func (ch *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ch.categoryService.SoftDelete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Category deleted.")
}

func (ch *CategoryHandler) Restore(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	cat, err := ch.categoryService.Reactivate(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, cat)
}

func (ch *CategoryHandler) PermanentDelete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ch.categoryService.PermanentDelete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Category permanently deleted.")
}

type bulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (ch *CategoryHandler) PermanentDeleteBulk(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("ids", "No IDs provided."))
		return
	}
	if err := ch.categoryService.PermanentDeleteBulk(c.Request.Context(), req.IDs); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Categories permanently deleted.")
}
