package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rivalioo/internal/infrastructure/firebase"
)

type HealthHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	backend      string
}

var healthHandler *HealthHandler

// NewHealthHandler accepts a nil firebaseAuth when Firebase is not configured.
func NewHealthHandler(firebaseAuth *firebase.FirebaseAuthClient, backend string) *HealthHandler {
	return &HealthHandler{
		firebaseAuth: firebaseAuth,
		backend:      backend,
	}
}

func SetupHealthHandler(firebaseAuth *firebase.FirebaseAuthClient, backend string) {
	healthHandler = NewHealthHandler(firebaseAuth, backend)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend,
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckAuthHealth(c echo.Context) error {
	if h.firebaseAuth == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Firebase Auth not configured",
		})
	}

	if err := h.firebaseAuth.TestConnection(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Firebase Auth connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Firebase Auth connected successfully",
	})
}
