package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type AttributeHandler struct {
	attributeService services.AttributeService
}

func NewAttributeHandler(attributeService services.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

type createAttributeRequest struct {
	CategoryID uuid.UUID          `json:"category_id" binding:"required"`
	AttrName   string             `json:"attr_name" binding:"required"`
	AttrSel    string             `json:"attr_sel"`
	AttrWrite  string             `json:"attr_write"`
	AttrVals   optional[[]string] `json:"attr_vals"`
}

type updateAttributeRequest struct {
	AttrName  *string            `json:"attr_name"`
	AttrSel   *string            `json:"attr_sel"`
	AttrWrite *string            `json:"attr_write"`
	AttrVals  optional[[]string] `json:"attr_vals"`
}

func (ah *AttributeHandler) Create(c *gin.Context) {
	var req createAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.CreateAttributeCommand{
		CategoryID: req.CategoryID,
		AttrName:   req.AttrName,
		AttrSel:    req.AttrSel,
		AttrWrite:  req.AttrWrite,
		ValsSet:    req.AttrVals.Set,
	}
	if req.AttrVals.Value != nil {
		cmd.AttrVals = *req.AttrVals.Value
	}
	created, err := ah.attributeService.Create(c.Request.Context(), cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ah *AttributeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.UpdateAttributeCommand{
		AttrName:  req.AttrName,
		AttrSel:   req.AttrSel,
		AttrWrite: req.AttrWrite,
		ValsSet:   req.AttrVals.Set,
	}
	if req.AttrVals.Value != nil {
		cmd.AttrVals = *req.AttrVals.Value
	}
	updated, err := ah.attributeService.Update(c.Request.Context(), id, cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ah *AttributeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	attr, err := ah.attributeService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, attr)
}

func (ah *AttributeHandler) List(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, apierr.ValidationField("category_id", "Invalid category_id."))
			return
		}
		categoryID = &id
	}
	pagenum, pagesize, offset := pagination(c)
	attrs, count, err := ah.attributeService.List(c.Request.Context(), categoryID, offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, attrs, pageMeta(c, count, pagenum, pagesize))
}

func (ah *AttributeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.attributeService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Attribute deleted.")
}
