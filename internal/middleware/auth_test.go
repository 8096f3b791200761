package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/commerce-admin-backend/internal/db"
	"github.com/yungbote/commerce-admin-backend/internal/handlers"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/services"
)

func newAuthFixture(t *testing.T) (services.AuthService, services.UserService) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:mw_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.MigrateModels(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	userRepo := repos.NewUserRepo(gdb, log)
	roleRepo := repos.NewRoleRepo(gdb, log)
	return services.NewAuthService(gdb, log, userRepo, "test-secret", time.Hour),
		services.NewUserService(gdb, log, userRepo, roleRepo)
}

func newGatedRouter(authSvc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("", RequireAuth(authSvc), RequireAdmin())
	protected.GET("/admin", func(c *gin.Context) {
		handlers.RespondOK(c, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	authSvc, _ := newAuthFixture(t)
	router := newGatedRouter(authSvc)

	if rec := get(router, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec := get(router, "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", rec.Code)
	}
}

func TestRequireAdminGatesNonStaff(t *testing.T) {
	authSvc, userSvc := newAuthFixture(t)
	router := newGatedRouter(authSvc)
	ctx := context.Background()

	if _, err := userSvc.Create(ctx, services.CreateUserCommand{
		Email: "staff@example.com", Password: "hunter22", IsStaff: true,
	}); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if _, err := userSvc.Create(ctx, services.CreateUserCommand{
		Email: "shopper@example.com", Password: "hunter22",
	}); err != nil {
		t.Fatalf("create shopper: %v", err)
	}

	staffToken, _, err := authSvc.Login(ctx, "staff@example.com", "hunter22")
	if err != nil {
		t.Fatalf("staff login: %v", err)
	}
	shopperToken, _, err := authSvc.Login(ctx, "shopper@example.com", "hunter22")
	if err != nil {
		t.Fatalf("shopper login: %v", err)
	}

	if rec := get(router, staffToken); rec.Code != http.StatusOK {
		t.Fatalf("staff status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	rec := get(router, shopperToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("shopper status = %d, want 403", rec.Code)
	}
	want := "You do not have permission to perform this action."
	if body := rec.Body.String(); !strings.Contains(body, want) {
		t.Fatalf("body missing permission message: %s", body)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	authSvc, userSvc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := userSvc.Create(ctx, services.CreateUserCommand{
		Email: "someone@example.com", Password: "correcthorse",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, _, err := authSvc.Login(ctx, "someone@example.com", "wrong"); err == nil {
		t.Fatalf("expected login rejection on bad password")
	}
	if _, _, err := authSvc.Login(ctx, "nobody@example.com", "whatever"); err == nil {
		t.Fatalf("expected login rejection on unknown email")
	}
}
