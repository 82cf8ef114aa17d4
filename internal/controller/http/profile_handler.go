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

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// Subscribe godoc
// @Summary      Toggle following an author
// @Description  Follows the author when not yet following, unfollows otherwise.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        authorId path int true "Author user ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /subscribe/{authorId} [post]
func (h *ProfileHandler) Subscribe(c *gin.Context) {
	authorID, ok := pathID(c, "authorId")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	following, err := h.profileUseCase.ToggleFollow(c.Request.Context(), userID, authorID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	message := "subscribed"
	if !following {
		message = "unsubscribed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "following": following})
}

// ListProfiles godoc
// @Summary      List profiles
// @Description  Non-admin profiles with post, follower and visited-country counts, 20 per page.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	views, err := h.profileUseCase.ListProfiles(c.Request.Context())
	if err != nil {
		h.logger.Error("profiles listing failed: %v", err)
		apperr.ToResponse(c, err)
		return
	}

	page := pagination.Paginate(views, pagination.ListPageSize, parsePage(c))
	c.JSON(http.StatusOK, gin.H{
		"profiles":    page.Items,
		"page":        page.PageNumber,
		"total_pages": page.TotalPages,
		"has_next":    page.HasNext,
		"has_prev":    page.HasPrev,
	})
}

// GetProfile godoc
// @Summary      Get profile detail
// @Description  Profile with interested countries and the count of distinct countries posted about.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200  {object}  usecase.ProfileView
// @Failure      404  {object}  map[string]string
// @Router       /profiles/{userId} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	view, err := h.profileUseCase.GetProfileDetail(c.Request.Context(), userID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
