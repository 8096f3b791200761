package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Envelope is the uniform response body. Success responses carry data and an
// optional meta block; failures carry message and field-keyed errors.
type Envelope struct {
	Status  string            `json:"status"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Meta    interface{}       `json:"meta,omitempty"`
}

// PageMeta describes one page of a list response.
type PageMeta struct {
	Count      int64   `json:"count"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
	PageNum    int     `json:"pagenum"`
	PageSize   int     `json:"pagesize"`
	TotalPages int64   `json:"total_pages"`
}

func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data})
}

func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: "success", Data: data})
}

func RespondOKMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data, Meta: meta})
}

func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Message: message})
}

// RespondError maps any error onto the failure envelope. Validation errors
// keep their field keys, and the message carries the field text so clients
// that only read message still see the specific failure.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	env := Envelope{Status: "error", Message: ae.Error()}
	if len(ae.Fields) > 0 {
		env.Errors = ae.Fields
	}
	c.JSON(ae.Status, env)
}

// pagination reads pagenum/pagesize from the query string, clamping to sane
// bounds. Invalid values fall back to the defaults.
func pagination(c *gin.Context) (pagenum, pagesize, offset int) {
	pagenum = 1
	if raw := c.Query("pagenum"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pagenum = n
		}
	}
	pagesize = defaultPageSize
	if raw := c.Query("pagesize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pagesize = n
		}
	}
	if pagesize > maxPageSize {
		pagesize = maxPageSize
	}
	offset = (pagenum - 1) * pagesize
	return pagenum, pagesize, offset
}

// pageMeta builds the pagination block, including absolute next/previous
// links derived from the request URL.
func pageMeta(c *gin.Context, count int64, pagenum, pagesize int) PageMeta {
	totalPages := count / int64(pagesize)
	if count%int64(pagesize) != 0 {
		totalPages++
	}
	meta := PageMeta{
		Count:      count,
		PageNum:    pagenum,
		PageSize:   pagesize,
		TotalPages: totalPages,
	}
	if int64(pagenum) < totalPages {
		next := pageURL(c, pagenum+1, pagesize)
		meta.Next = &next
	}
	if pagenum > 1 {
		prev := pageURL(c, pagenum-1, pagesize)
		meta.Previous = &prev
	}
	return meta
}

func pageURL(c *gin.Context, pagenum, pagesize int) string {
	return fmt.Sprintf("%s?pagenum=%d&pagesize=%d", c.Request.URL.Path, pagenum, pagesize)
}
