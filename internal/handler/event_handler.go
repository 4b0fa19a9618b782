package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Eursukkul/local-event-finder/internal/dto"
	"github.com/Eursukkul/local-event-finder/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc          service.EventService
	reservations service.ReservationService
}

func NewEventHandler(svc service.EventService, reservations service.ReservationService) *EventHandler {
	return &EventHandler{svc: svc, reservations: reservations}
}

// RegisterRoutes mounts the public catalog on events and the admin endpoints on
// admin. Authentication is the caller's concern.
func (h *EventHandler) RegisterRoutes(events, admin *echo.Group) {
	events.GET("", h.SearchEvents)
	events.GET("/:id", h.GetEvent)

	admin.POST("/events", h.CreateEvent)
	admin.PUT("/events/:id", h.UpdateEvent)
	admin.DELETE("/events/:id", h.DeleteEvent)
	admin.POST("/events/:id/cancel", h.ToggleCancellation)
	admin.POST("/events/:id/resync", h.Resync)
	admin.GET("/events/:id/interests", h.EventInterests)
}

func (h *EventHandler) SearchEvents(c echo.Context) error {
	var req dto.SearchEventsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	from, err := parseDate(req.From, false)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
	}
	to, err := parseDate(req.To, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
	}
	lat, lon := parseCoord(req.Latitude), parseCoord(req.Longitude)

	page, err := h.svc.SearchEvents(c.Request().Context(), service.SearchQuery{
		Text:      req.Text,
		City:      req.City,
		Category:  req.Category,
		From:      from,
		To:        to,
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  req.RadiusKm,
		Sort:      req.Sort,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.EventPageResponse{
		Items:      make([]dto.EventResponse, len(page.Items)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
	for i, it := range page.Items {
		ev := dto.ToEventResponse(&it.Event)
		ev.DistanceKm = it.DistanceKm
		ev.Distance = it.Distance
		resp.Items[i] = ev
	}
	return c.JSON(http.StatusOK, resp)
}

// parseDate accepts RFC 3339 or a bare date. A bare "to" date covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// parseCoord expects input already checked by the validator.
func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event := req.ToModel()
	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), id, service.UpdateEventInput{
		Title:          req.Title,
		Description:    req.Description,
		StartUTC:       req.StartUTC,
		EndUTC:         req.EndUTC,
		Category:       req.Category,
		City:           req.City,
		Venue:          req.Venue,
		Address:        req.Address,
		IsFree:         req.IsFree,
		Organizer:      req.Organizer,
		ExternalURL:    req.ExternalURL,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		TotalSeats:     req.TotalSeats,
		UnlimitedSeats: req.UnlimitedSeats,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) ToggleCancellation(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.ToggleCancellation(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) Resync(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.reservations.Resync(ctx, id); err != nil {
		return toHTTPError(err)
	}

	event, err := h.svc.GetEvent(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) EventInterests(c echo.Context) error {
	id, err := parseEventID(c)
	if err != nil {
		return err
	}

	interests, err := h.reservations.EventInterests(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToInterestResponses(interests))
}
