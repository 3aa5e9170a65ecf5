package handler

import (
	"net/http"

	repo "shoppingcart/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	store repo.KVStore
	log   *logrus.Entry
}

func NewHealthHandler(store repo.KVStore, log *logrus.Entry) *HealthHandler {
	return &HealthHandler{store: store, log: log}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.check)
}

// ストアに届かなければ503
func (h *HealthHandler) check(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		h.log.WithError(err).Warn("store ping failed")
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
