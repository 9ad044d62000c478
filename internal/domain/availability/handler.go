package availability

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability/:genericName", h.Search)
	api.GET("/pharmacies/:id/availability/:genericName", h.SearchScoped)
	api.POST("/availability/search", h.SearchCandidates)
}

func (h *Handler) Search(c echo.Context) error {
	results, err := h.svc.Search(c.Request().Context(), c.Param("genericName"), nil)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(results))
}

func (h *Handler) SearchScoped(c echo.Context) error {
	pharmacyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pharmacy id")
	}
	results, err := h.svc.Search(c.Request().Context(), c.Param("genericName"), &pharmacyID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(results))
}

type searchCandidatesRequest struct {
	Candidates []string `json:"candidates" validate:"required,min=1"`
}

func (h *Handler) SearchCandidates(c echo.Context) error {
	var req searchCandidatesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results, err := h.svc.SearchCandidates(c.Request().Context(), req.Candidates)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, results)
}

func emptyIfNil(results []*Result) []*Result {
	if results == nil {
		return []*Result{}
	}
	return results
}

func mapError(err error) error {
	if errors.Is(err, ErrInvalidInput) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
