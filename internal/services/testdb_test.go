package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/commerce-admin-backend/internal/db"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own named database so tests cannot see each other's
// rows even when connections are pooled.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.MigrateModels(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
