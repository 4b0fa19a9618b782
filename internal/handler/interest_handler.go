package handler

import (
	"net/http"

	"github.com/Eursukkul/local-event-finder/internal/dto"
	"github.com/Eursukkul/local-event-finder/internal/middleware"
	"github.com/Eursukkul/local-event-finder/internal/service"
	"github.com/labstack/echo/v4"
)

type InterestHandler struct {
	svc service.ReservationService
}

func NewInterestHandler(svc service.ReservationService) *InterestHandler {
	return &InterestHandler{svc: svc}
}

func (h *InterestHandler) RegisterRoutes(api *echo.Group, auth *middleware.Authenticator, limit echo.MiddlewareFunc) {
	api.GET("/events/:id/interest", h.GetStatus, auth.OptionalUser)
	api.POST("/events/:id/interest", h.ToggleInterest, auth.RequireUser, limit)
	api.GET("/me/events", h.MyEvents, auth.RequireUser)
}

func (h *InterestHandler) ToggleInterest(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	ctx := c.Request().Context()
	result, err := h.svc.ToggleInterest(ctx, eventID, userID)
	if err != nil {
		return toHTTPError(err)
	}

	// counts are read after the toggle committed and may already be stale
	status, err := h.svc.Status(ctx, eventID, userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.InterestToggleResponse{
		Success:        !result.Refused(),
		IsInterested:   result.Interested,
		InterestCount:  status.Count,
		AvailableSeats: result.AvailableSeats,
		CanRegister:    status.CanRegister,
		Message:        result.Message,
	})
}

func (h *InterestHandler) GetStatus(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	status, err := h.svc.Status(c.Request().Context(), eventID, middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.InterestStatusResponse{
		IsInterested:   status.Interested,
		InterestCount:  status.Count,
		AvailableSeats: status.AvailableSeats,
		CanRegister:    status.CanRegister,
	})
}

func (h *InterestHandler) MyEvents(c echo.Context) error {
	interests, err := h.svc.UserInterests(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToInterestResponses(interests))
}
