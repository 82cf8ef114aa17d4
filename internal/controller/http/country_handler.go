package http

import (
	"net/http"

	"wayfarer/internal/usecase"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	countryUseCase usecase.CountryUseCase
	logger         *logger.Logger
}

func NewCountryHandler(countryUseCase usecase.CountryUseCase, logger *logger.Logger) *CountryHandler {
	return &CountryHandler{
		countryUseCase: countryUseCase,
		logger:         logger,
	}
}

// ListCountries godoc
// @Summary      List countries with posts
// @Description  Countries at least one post is tagged with, 20 per page.
// @Tags         countries
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /countries [get]
func (h *CountryHandler) ListCountries(c *gin.Context) {
	countries, err := h.countryUseCase.ListWithPosts(c.Request.Context())
	if err != nil {
		h.logger.Error("countries listing failed: %v", err)
		apperr.ToResponse(c, err)
		return
	}

	page := pagination.Paginate(countries, pagination.ListPageSize, parsePage(c))
	c.JSON(http.StatusOK, gin.H{
		"countries":   page.Items,
		"page":        page.PageNumber,
		"total_pages": page.TotalPages,
		"has_next":    page.HasNext,
		"has_prev":    page.HasPrev,
	})
}

// GetCountry godoc
// @Summary      Get country detail
// @Description  Country reference data plus the posts tagged with it.
// @Tags         countries
// @Accept       json
// @Produce      json
// @Param        id path int true "Country ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /countries/{id} [get]
func (h *CountryHandler) GetCountry(c *gin.Context) {
	countryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	country, err := h.countryUseCase.GetCountry(c.Request.Context(), countryID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	posts, err := h.countryUseCase.PostsByCountry(c.Request.Context(), countryID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"country": country, "posts": posts, "count": len(posts)})
}

// ToggleInterest godoc
// @Summary      Toggle interest in a country
// @Description  Adds the country to the user's interests when absent, removes it otherwise. The feed follows on the next request.
// @Tags         countries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Country ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /countries/{id}/toggle-interest [post]
func (h *CountryHandler) ToggleInterest(c *gin.Context) {
	countryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	interested, err := h.countryUseCase.ToggleInterest(c.Request.Context(), middleware.UserID(c), countryID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	message := "interest added"
	if !interested {
		message = "interest removed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "interested": interested})
}
