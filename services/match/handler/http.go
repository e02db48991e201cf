package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/utils"
	"github.com/tawseel/dispatch/services/match"
	locationuc "github.com/tawseel/dispatch/services/location/usecase"
)

// MatchHandler serves the driver search endpoint
type MatchHandler struct {
	matchUC match.MatchUC
}

func NewMatchHandler(matchUC match.MatchUC) *MatchHandler {
	return &MatchHandler{matchUC: matchUC}
}

// RegisterRoutes wires the match endpoints into the Echo instance. The
// middleware guards the routes with JWT auth.
func (h *MatchHandler) RegisterRoutes(e *echo.Echo, middleware ...echo.MiddlewareFunc) {
	v1 := e.Group("/v1", middleware...)
	v1.POST("/matches", h.FindMatches)
}

// FindMatches handles POST /v1/matches. An empty candidate list is a
// successful response, not an error.
func (h *MatchHandler) FindMatches(c echo.Context) error {
	var req models.MatchRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	result, err := h.matchUC.FindBestDrivers(c.Request().Context(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.BadRequestResponse(c, err.Error())
		}
		logger.Error("match search failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "match search failed")
	}

	return utils.SuccessResponse(c, http.StatusOK, "match search completed", result)
}

func isValidationError(err error) bool {
	return errors.Is(err, locationuc.ErrInvalidLatitude) ||
		errors.Is(err, locationuc.ErrInvalidLongitude) ||
		errors.Is(err, locationuc.ErrMissingCoordinates)
}
