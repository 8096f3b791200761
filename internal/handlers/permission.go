package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type PermissionHandler struct {
	permissionService services.PermissionService
}

func NewPermissionHandler(permissionService services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

type createPermissionRequest struct {
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type updatePermissionRequest struct {
	Name     *string          `json:"name"`
	ParentID optional[string] `json:"parent_id"`
}

func (ph *PermissionHandler) Create(c *gin.Context) {
	var req createPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("name", "Name is required."))
		return
	}
	created, err := ph.permissionService.Create(c.Request.Context(), services.CreatePermissionCommand{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ph *PermissionHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.UpdatePermissionCommand{
		Name: req.Name,
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
	updated, err := ph.permissionService.Update(c.Request.Context(), id, cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ph *PermissionHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	perm, err := ph.permissionService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, perm)
}

// List supports two projections: the default page of level-1 roots and, with
// ?view=tree, the full nested hierarchy without pagination.
func (ph *PermissionHandler) List(c *gin.Context) {
	if c.Query("view") == "tree" {
		tree, err := ph.permissionService.ListTree(c.Request.Context())
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, tree)
		return
	}
	pagenum, pagesize, offset := pagination(c)
	perms, count, err := ph.permissionService.List(c.Request.Context(), offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, perms, pageMeta(c, count, pagenum, pagesize))
}

func (ph *PermissionHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := ph.permissionService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Permission deleted.")
}
