package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
	"github.com/fountainmap/fountain-finder/internal/core/ports"
)

// FountainHandler handles HTTP requests for fountain operations.
type FountainHandler struct {
	service ports.FountainService
}

func NewFountainHandler(service ports.FountainService) *FountainHandler {
	return &FountainHandler{service: service}
}

// List returns all fountains, optionally restricted to a bounding box
// approximating a radius around a center point. The spatial filter activates
// only when lat, lng, and radius are all present.
//
// @Summary      List fountains
// @Tags         fountains
// @Produce      json
// @Param        lat     query     number  false  "Center latitude"
// @Param        lng     query     number  false  "Center longitude"
// @Param        radius  query     number  false  "Radius in kilometers"
// @Success      200     {object}  listFountainsResponse
// @Failure      400     {object}  map[string]any
// @Router       /api/fountains [get]
func (h *FountainHandler) List(c echo.Context) error {
	filter, err := locationFilterFromQuery(c)
	if err != nil {
		return err
	}

	fountains, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := toFountainList(fountains)
	return c.JSON(http.StatusOK, listFountainsResponse{
		Success:   true,
		Count:     len(items),
		Fountains: items,
	})
}

// Get returns a single fountain by id.
//
// @Summary      Get a fountain
// @Tags         fountains
// @Produce      json
// @Param        id   path      string  true  "Fountain id"
// @Success      200  {object}  fountainEnvelope
// @Failure      404  {object}  map[string]any
// @Router       /api/fountains/{id} [get]
func (h *FountainHandler) Get(c echo.Context) error {
	fountain, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fountainEnvelope{
		Success:  true,
		Fountain: toFountainResponse(fountain),
	})
}

// Create places a new fountain marker.
//
// @Summary      Create a fountain
// @Tags         fountains
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFountainRequest  true  "Fountain details"
// @Success      201   {object}  fountainEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/fountains [post]
func (h *FountainHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createFountainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fountain, err := h.service.Create(c.Request().Context(), ports.CreateFountainInput{
		Name:    req.Name,
		Address: req.Address,
		Lat:     *req.Lat,
		Lng:     *req.Lng,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, fountainEnvelope{
		Success:  true,
		Fountain: toFountainResponse(fountain),
	})
}

// AddReview appends a status review to a fountain.
//
// @Summary      Add a review
// @Tags         fountains
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Fountain id"
// @Param        body  body      addReviewRequest  true  "Review"
// @Success      201   {object}  fountainEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/fountains/{id}/reviews [post]
func (h *FountainHandler) AddReview(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fountain, err := h.service.AddReview(c.Request().Context(), ports.AddReviewInput{
		FountainID: c.Param("id"),
		Status:     domain.Status(req.Status),
		Text:       req.Text,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, fountainEnvelope{
		Success:  true,
		Fountain: toFountainResponse(fountain),
	})
}

// Report increments a fountain's report counter.
//
// @Summary      Report a fountain
// @Tags         fountains
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Fountain id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/fountains/{id}/report [post]
func (h *FountainHandler) Report(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Report(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Fountain reported successfully",
	})
}

// Delete removes a fountain. Only its creator may delete it.
//
// @Summary      Delete a fountain
// @Tags         fountains
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Fountain id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/fountains/{id} [delete]
func (h *FountainHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Fountain deleted successfully",
	})
}

// locationFilterFromQuery parses the optional lat/lng/radius query
// parameters. All three must be present to activate the filter; a present
// but unparsable value is a 400.
func locationFilterFromQuery(c echo.Context) (*ports.LocationFilter, error) {
	latStr := c.QueryParam("lat")
	lngStr := c.QueryParam("lng")
	radiusStr := c.QueryParam("radius")
	if latStr == "" || lngStr == "" || radiusStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "lng must be a number")
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "radius must be a number")
	}

	return &ports.LocationFilter{Lat: lat, Lng: lng, RadiusKm: radius}, nil
}
