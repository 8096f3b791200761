package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
)

// parseIDParam reads the :id route parameter as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.ValidationField("id", "Invalid id.")
	}
	return id, nil
}

// optional distinguishes an absent JSON field from an explicit null: Set is
// true whenever the field appeared in the payload, Value is nil for null.
type optional[T any] struct {
	Set   bool
	Value *T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
