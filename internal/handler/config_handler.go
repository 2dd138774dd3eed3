package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/internal/middleware"
	"github.com/noah-isme/sma-vote-api/internal/models"
	"github.com/noah-isme/sma-vote-api/pkg/response"
)

type brandingService interface {
	Branding(ctx context.Context) (*models.Branding, error)
	UpdateBranding(ctx context.Context, req dto.BrandingRequest) error
}

type adminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, provided string) error
}

// ConfigHandler reads and writes school branding.
type ConfigHandler struct {
	service brandingService
	access  adminAuthorizer
}

// NewConfigHandler constructs a config handler.
func NewConfigHandler(svc brandingService, access adminAuthorizer) *ConfigHandler {
	return &ConfigHandler{service: svc, access: access}
}

// Config godoc
// @Summary Read or update school branding
// @Tags Config
// @Accept json
// @Produce json
// @Param x-admin-code header string false "Admin code, required for POST"
// @Param payload body dto.BrandingRequest false "Branding"
// @Success 200 {object} models.Branding
// @Failure 401 {object} errors.Error
// @Failure 405 {object} errors.Error
// @Router /config [get]
// @Router /config [post]
func (h *ConfigHandler) Config(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		branding, err := h.service.Branding(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, branding)
	case http.MethodPost:
		if err := h.access.AuthorizeAdmin(c.Request.Context(), c.GetHeader(middleware.HeaderAdminCode)); err != nil {
			response.Error(c, err)
			return
		}
		var req dto.BrandingRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		if err := h.service.UpdateBranding(c.Request.Context(), req); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c)
	default:
		allowMethods(c, http.MethodGet, http.MethodPost)
	}
}
