package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type RoleHandler struct {
	roleService services.RoleService
}

func NewRoleHandler(roleService services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

type updateRoleRequest struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	PermissionIDs optional[[]uuid.UUID] `json:"permission_ids"`
}

func (rh *RoleHandler) Create(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("name", "Name is required."))
		return
	}
	created, err := rh.roleService.Create(c.Request.Context(), services.CreateRoleCommand{
		Name:          req.Name,
		Description:   req.Description,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (rh *RoleHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.UpdateRoleCommand{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.PermissionIDs.Set {
		cmd.PermissionsSet = true
		if req.PermissionIDs.Value != nil {
			cmd.PermissionIDs = *req.PermissionIDs.Value
		}
	}
	updated, err := rh.roleService.Update(c.Request.Context(), id, cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (rh *RoleHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	role, err := rh.roleService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, role)
}

func (rh *RoleHandler) List(c *gin.Context) {
	pagenum, pagesize, offset := pagination(c)
	roles, count, err := rh.roleService.List(c.Request.Context(), offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, roles, pageMeta(c, count, pagenum, pagesize))
}

func (rh *RoleHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := rh.roleService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Role deleted.")
}
