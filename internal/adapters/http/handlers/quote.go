package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/teapot-service/internal/app"
)

const (
	// HealthyStatus is the status reported by the public health endpoint.
	HealthyStatus = "healthy"

	// NotFoundMessage is the body of every 404.
	NotFoundMessage = "Endpoint not found"
)

// DocsText renders the plain-text endpoint listing served at / and /docs.
func DocsText(version string) string {
	return strings.Join([]string{
		"Teapot-as-a-Service " + version,
		"",
		"Endpoints:",
		"- GET /teapot (returns random teapot quote, status 418)",
		"- GET /health",
		"- GET / and GET /docs",
	}, "\n")
}

// TeapotHandler serves the public teapot endpoints.
type TeapotHandler struct {
	service *app.QuoteService
	version string
	docs    string
}

// NewTeapotHandler creates a new teapot handler.
func NewTeapotHandler(service *app.QuoteService, version string) *TeapotHandler {
	return &TeapotHandler{
		service: service,
		version: version,
		docs:    DocsText(version),
	}
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health reports that the process is up, with its version. Any method.
func (h *TeapotHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  HealthyStatus,
		Version: h.version,
	})
}

// Docs serves the endpoint listing. Any method.
func (h *TeapotHandler) Docs(c *gin.Context) {
	c.String(http.StatusOK, h.docs)
}

// Teapot answers GET with a random quote and status 418 I'm a teapot.
// Every other method gets 405 with Allow: GET.
func (h *TeapotHandler) Teapot(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.Header("Allow", http.MethodGet)
		c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}

	quote := h.service.RandomQuote(c.Request.Context())
	c.String(http.StatusTeapot, quote.String())
}

// NotFound answers any request that matched no route.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, NotFoundMessage)
}
