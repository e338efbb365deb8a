package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// monthParam reads the month query parameter; required unless optional.
func monthParam(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if month == "" {
		AbortWithError(c, ErrInvalidRequest)
		return "", false
	}
	return month, true
}

// smetaKeyParam accepts smeta_key with smeta as a legacy alias.
func smetaKeyParam(c *gin.Context) string {
	if key := c.Query("smeta_key"); key != "" {
		return key
	}
	return c.Query("smeta")
}

func (s *Server) GetCombinedDashboard(c *gin.Context) {
	dashboard, err := s.dashboardSvc.CombinedDashboard(c.Request.Context(), c.Query("month"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (s *Server) GetMonths(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 120 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	months, err := s.dashboardSvc.AvailableMonths(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, months)
}

func (s *Server) GetMonthlySummary(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	summary, err := s.dashboardSvc.MonthlySummary(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) GetMonthlyBySmeta(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	cards, err := s.dashboardSvc.MonthlyBySmeta(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (s *Server) GetDailyRevenue(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	revenue, err := s.dashboardSvc.DailyRevenue(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

func (s *Server) GetMonthlyDates(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	dates, err := s.dashboardSvc.MonthlyDates(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (s *Server) GetSmetaDetails(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	details, err := s.dashboardSvc.SmetaDetails(c.Request.Context(), month, smetaKeyParam(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) GetSmetaDescriptionDaily(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	daily, err := s.dashboardSvc.SmetaDescriptionDaily(
		c.Request.Context(),
		month,
		smetaKeyParam(c),
		c.Query("description"),
		c.Query("description_id"),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, daily)
}

func (s *Server) GetFactByTypeOfWork(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	report, err := s.dashboardSvc.FactByTypeOfWork(c.Request.Context(), month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) GetLastLoaded(c *gin.Context) {
	loaded, err := s.dashboardSvc.LastLoaded(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, loaded)
}

func (s *Server) GetDaily(c *gin.Context) {
	// day is the alias older dashboard builds send.
	date := c.Query("date")
	if date == "" {
		date = c.Query("day")
	}
	if date == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	report, err := s.dashboardSvc.Daily(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
