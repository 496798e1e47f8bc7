package controllers

import (
	"net/http"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get admin dashboard
// @Description Fetch KPI counts, new users/groups series, category mix and the most recently added groups
// @Tags Admin
// @Produce json
// @Param start     query string false "RFC3339 start (e.g. 2025-10-01T00:00:00Z)"
// @Param end       query string false "RFC3339 end (e.g. 2025-10-19T23:59:59Z)"
// @Param last_days query int    false "Relative lookback in days (mutually exclusive with start/end). Default 30"
// @Param interval  query string false "Bucket size: day | week | month (default: day)"
// @Param tz        query string false "IANA timezone for bucketing (default: UTC)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	interval := c.DefaultQuery("interval", "day")
	tz := c.Query("tz")

	if !validInterval(interval) {
		utils.RespondError(c, http.StatusBadRequest, "interval must be one of: day, week, month")
		return
	}
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "tz must be an IANA timezone name")
			return
		}
	}

	var (
		start, end time.Time
		err        error
	)

	startStr := c.Query("start")
	endStr := c.Query("end")
	lastDaysStr := c.Query("last_days")

	if lastDaysStr != "" && (startStr != "" || endStr != "") {
		utils.RespondError(c, http.StatusBadRequest, "provide either last_days or start/end (not both)")
		return
	}

	if lastDaysStr != "" {
		d, convErr := strconv.Atoi(lastDaysStr)
		if convErr != nil || d <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "last_days must be a positive integer")
			return
		}
		end = time.Now().UTC()
		start = end.AddDate(0, 0, -d)
	} else {
		if startStr != "" {
			if start, err = time.Parse(time.RFC3339, startStr); err != nil {
				utils.RespondError(c, http.StatusBadRequest, "start must be RFC3339 (e.g. 2025-10-01T00:00:00Z)")
				return
			}
		}
		if endStr != "" {
			if end, err = time.Parse(time.RFC3339, endStr); err != nil {
				utils.RespondError(c, http.StatusBadRequest, "end must be RFC3339 (e.g. 2025-10-19T23:59:59Z)")
				return
			}
		}
	}

	tr := response_models.TimeRange{
		Start:    start,
		End:      end,
		Interval: interval,
		Timezone: tz,
	}

	report, svcErr := p.dashboardService.BuildDashboard(c.Request.Context(), tr)
	if svcErr != nil {
		utils.HandleServiceError(c, svcErr)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}

func validInterval(s string) bool {
	switch s {
	case "day", "week", "month":
		return true
	default:
		return false
	}
}
