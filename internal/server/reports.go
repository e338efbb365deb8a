package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetMonthlyReport(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	report, err := s.reportsSvc.MonthlyReportPDF(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, "application/pdf", report.Content)
}
