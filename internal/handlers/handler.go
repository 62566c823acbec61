// Package handlers exposes the storefront facade over HTTP.
package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/storefront"
	"techplug_back_end/internal/utils"
)

type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, productID string, file *multipart.FileHeader) (string, error)
}

type Analyzer interface {
	GenerateAnalysis(ctx context.Context, description, serviceType string) string
}

// AdminCredentials is the placeholder admin gate. PasswordHash, when set,
// takes precedence over the plain Password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
	JWTSecret    string
	JWTTTL       time.Duration
}

// Deps are the collaborators of Handler. Search, Images and Auditor are
// optional.
type Deps struct {
	Store         *storefront.Facade
	Logger        *zap.Logger
	Hub           *Hub
	Search        Searcher
	Images        ImageUploader
	Analyzer      Analyzer
	Auditor       utils.Auditor
	Admin         AdminCredentials
	CheckoutDelay time.Duration
	Checks        map[string]func(context.Context) error
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Hub == nil {
		d.Hub = NewHub(d.Logger)
	}
	return &Handler{Deps: d}
}

// fail maps a domain error onto its HTTP status.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error", "request_id": c.GetString("request_id")})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
}

func (h *Handler) audit(c *gin.Context, action, resource, id string, value any) {
	if h.Auditor == nil {
		return
	}
	utils.LogAction(c, h.Auditor, h.Logger, action, resource, id, value)
}
