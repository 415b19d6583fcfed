package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cta-relay/pkg/logging"
	"cta-relay/pkg/routing"
	"cta-relay/pkg/services"
)

// maxBodySize caps a submission body; a contact form is a few hundred bytes
const maxBodySize = 64 << 10

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	relayService services.RelayService
	phoneRule    routing.Rule
	logger       *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(relayService services.RelayService, phoneRule routing.Rule, logger *zap.Logger) *Handlers {
	return &Handlers{
		relayService: relayService,
		phoneRule:    phoneRule,
		logger:       logger,
	}
}

// RegisterRoutes wires the handlers into router
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	// Any method reaches the relay so that it can answer 405 itself
	router.Any("/cta", h.HandleCTA)
	router.Any("/api/cta", h.HandleCTA)
	router.GET("/contact-phone", h.ContactPhone)
	router.GET("/health", h.HealthCheck)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleCTA relays a contact request from the landing page to the intake service
func (h *Handlers) HandleCTA(c *gin.Context) {
	var body []byte
	if c.Request.Method == http.MethodPost {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			// An unreadable body is treated like an empty one: malformed input
			logging.FromContext(c.Request.Context(), h.logger).Debug("Error reading request body", zap.Error(err))
			body = nil
		}
	}

	out := h.relayService.Handle(c.Request.Context(), c.Request.Method, body)
	c.PureJSON(out.Status(), out.Result)
}

// ContactPhone returns the phone to show for the visitor's utm_medium
func (h *Handlers) ContactPhone(c *gin.Context) {
	if h.phoneRule.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact phone is not configured"})
		return
	}
	medium := routing.MediumFromQuery(c.Request.URL.Query())
	c.JSON(http.StatusOK, gin.H{"phone": h.phoneRule.Resolve(medium)})
}
