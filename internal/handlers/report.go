package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/commerce-admin-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// dateRangeMeta echoes the effective range back to the caller so defaulted
// boundaries are visible.
type dateRangeMeta struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (rh *ReportHandler) parseRange(c *gin.Context) (services.DateRange, error) {
	return services.ParseDateRange(c.Query("start_date"), c.Query("end_date"), time.Now().UTC())
}

func (rh *ReportHandler) SalesByDate(c *gin.Context) {
	dr, err := rh.parseRange(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	report, err := rh.reportService.SalesByDate(c.Request.Context(), dr)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, report, dateRangeMeta{StartDate: dr.StartDate(), EndDate: dr.EndDate()})
}

func (rh *ReportHandler) ProductPopularity(c *gin.Context) {
	dr, err := rh.parseRange(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	report, err := rh.reportService.ProductPopularity(c.Request.Context(), dr)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, report, dateRangeMeta{StartDate: dr.StartDate(), EndDate: dr.EndDate()})
}

func (rh *ReportHandler) PaymentStatus(c *gin.Context) {
	dr, err := rh.parseRange(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	report, err := rh.reportService.PaymentStatus(c.Request.Context(), dr)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, report, dateRangeMeta{StartDate: dr.StartDate(), EndDate: dr.EndDate()})
}

func (rh *ReportHandler) CategorySales(c *gin.Context) {
	dr, err := rh.parseRange(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	report, err := rh.reportService.CategorySales(c.Request.Context(), dr)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOKMeta(c, report, dateRangeMeta{StartDate: dr.StartDate(), EndDate: dr.EndDate()})
}
