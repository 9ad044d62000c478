package inventory

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/epharmacy/epharmacy/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	pharm := api.Group("", auth.RequireRole(auth.RolePharmacist))
	pharm.POST("/stocks", h.CreateStock)
	pharm.GET("/stocks", h.ListStocks)
	pharm.GET("/stocks/:id", h.GetStock)
	pharm.PUT("/stocks/:id", h.UpdateStock)
	pharm.DELETE("/stocks/:id", h.DeleteStock)
	pharm.GET("/pharmacies/:id/stocks", h.ListPharmacyStocks)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.DELETE("/medicines/:id", h.DeleteMedicine)
}

type createStockRequest struct {
	GenericName        string            `json:"genericName" validate:"required"`
	BrandName          string            `json:"brandName"`
	DosageForm         string            `json:"dosageForm"`
	DosageStrength     string            `json:"dosageStrength"`
	Classification     string            `json:"classification"`
	Description        string            `json:"description"`
	Category           string            `json:"category" validate:"required"`
	ExpirationPerStock []ExpirationEntry `json:"expirationPerStock" validate:"required,min=1"`
	Pharmacy           string            `json:"pharmacy" validate:"required,uuid"`
}

type updateStockRequest struct {
	ExpirationPerStock []ExpirationEntry `json:"expirationPerStock" validate:"required,min=1"`
}

func (h *Handler) CreateStock(c echo.Context) error {
	var req createStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pharmacyID, err := uuid.Parse(req.Pharmacy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pharmacy id")
	}

	detail, err := h.svc.CreateStock(c.Request().Context(), CreateStockInput{
		GenericName:    req.GenericName,
		BrandName:      req.BrandName,
		DosageForm:     req.DosageForm,
		DosageStrength: req.DosageStrength,
		Classification: req.Classification,
		Description:    req.Description,
		Category:       req.Category,
		Entries:        req.ExpirationPerStock,
		PharmacyID:     pharmacyID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *Handler) ListStocks(c echo.Context) error {
	owner := c.QueryParam("owner")
	if owner == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "owner query parameter is required")
	}
	ownerID, err := uuid.Parse(owner)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid owner id")
	}

	details, err := h.svc.ListForOwner(c.Request().Context(), ownerID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) ListPharmacyStocks(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pharmacy id")
	}
	details, err := h.svc.ListForPharmacy(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) GetStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	detail, err := h.svc.GetBatch(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.svc.UpdateBatch(c.Request().Context(), id, req.ExpirationPerStock)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) DeleteStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteBatch(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteMedicine(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteMedicineCascade(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
