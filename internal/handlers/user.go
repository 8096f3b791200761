package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Email    string     `json:"email" binding:"required"`
	Username string     `json:"username"`
	Password string     `json:"password" binding:"required"`
	IsStaff  bool       `json:"is_staff"`
	RoleID   *uuid.UUID `json:"role_id"`
}

type updateUserRequest struct {
	Email    *string          `json:"email"`
	Username *string          `json:"username"`
	Password *string          `json:"password"`
	IsStaff  *bool            `json:"is_staff"`
	RoleID   optional[string] `json:"role_id"`
}

func (uh *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Email and password are required."))
		return
	}
	created, err := uh.userService.Create(c.Request.Context(), services.CreateUserCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		IsStaff:  req.IsStaff,
		RoleID:   req.RoleID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (uh *UserHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.ValidationField("detail", "Invalid request body."))
		return
	}
	cmd := services.UpdateUserCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		IsStaff:  req.IsStaff,
	}
	if req.RoleID.Set {
		cmd.RoleSet = true
		if req.RoleID.Value != nil {
			roleID, err := uuid.Parse(*req.RoleID.Value)
			if err != nil {
				RespondError(c, apierr.ValidationField("role_id", "Invalid role_id."))
				return
			}
			cmd.RoleID = &roleID
		}
	}
	updated, err := uh.userService.Update(c.Request.Context(), id, cmd)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (uh *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	user, err := uh.userService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) List(c *gin.Context) {
	pagenum, pagesize, offset := pagination(c)
	users, count, err := uh.userService.List(c.Request.Context(), offset, pagesize)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, users, pageMeta(c, count, pagenum, pagesize))
}

func (uh *UserHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := uh.userService.SoftDelete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "User deleted.")
}
