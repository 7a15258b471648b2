package handlers

import (
	"errors"
	"net/http"
	"strconv"

	response "rugquotes/internal/adapter/http/dto/response"
	"rugquotes/internal/domain/entities"
	"rugquotes/internal/usecase"
	"rugquotes/internal/usecase/interfaces"
	"rugquotes/pkg"

	"github.com/gin-gonic/gin"
)

// ActivityLogHandler serves the admin audit-trail view.

type ActivityLogHandler struct {
	usecase usecase.IActivityLogUseCase
}

func NewActivityLogHandler(uc usecase.IActivityLogUseCase) *ActivityLogHandler {
	return &ActivityLogHandler{usecase: uc}
}

// ListActivityLogs godoc
// @Summary  List activity-log entries
// @Tags     activity-logs
// @Produce  json
// @Param    action_type query string false "Action type filter ('all' disables)"
// @Param    start_date  query string false "Inclusive start date (YYYY-MM-DD)"
// @Param    end_date    query string false "Inclusive end date (YYYY-MM-DD)"
// @Param    limit       query int    false "Row cap (default 100)"
// @Success  200 {array} response.ActivityLogResponse
// @Security Bearer
// @Router   /activity-logs [get]
func (h *ActivityLogHandler) ListActivityLogs(c *gin.Context) {
	var filter interfaces.ActivityLogFilter

	if at := c.Query("action_type"); at != "" && at != "all" {
		actionType := entities.ActionType(at)
		filter.ActionType = &actionType
	}

	var parseErr error
	filter.StartDate, parseErr = parseTimeQuery(c.Query("start_date"))
	if parseErr == nil {
		filter.EndDate, parseErr = parseTimeQuery(c.Query("end_date"))
	}
	if parseErr != nil {
		appErr := pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid date filter", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			appErr := pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid limit", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		filter.Limit = n
	}

	logs, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapActivityLogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromActivityLogs(logs))
}

func mapActivityLogError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidActionType):
		return pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid action type", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
