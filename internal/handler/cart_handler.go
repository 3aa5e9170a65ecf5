package handler

import (
	"net/http"
	"strconv"

	"shoppingcart/internal/middleware"
	"shoppingcart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// /cartのHTTP
type CartHandler struct {
	uc  *usecase.CartUsecase
	log *logrus.Entry
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, log *logrus.Entry) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

type ItemQuantityResponse struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

// /cart 配下を登録。jwtSecretが空なら認証なし。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/cart")
	if jwtSecret != "" {
		g.Use(middleware.AuthJWT(jwtSecret))
	}

	g.GET("", h.getCart)
	g.DELETE("", h.clearCart)
	g.POST("/open", h.openCart)
	g.POST("/close", h.closeCart)

	g.GET("/items/:id", h.getItemQuantity)
	g.POST("/items/:id/increase", h.increase)
	g.POST("/items/:id/decrease", h.decrease)
	g.DELETE("/items/:id", h.remove)
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.State())
}

func (h *CartHandler) clearCart(c echo.Context) error {
	if err := h.uc.ClearCart(c.Request().Context()); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, h.uc.State())
}

func (h *CartHandler) openCart(c echo.Context) error {
	h.uc.OpenCart()
	return c.JSON(http.StatusOK, h.uc.State())
}

func (h *CartHandler) closeCart(c echo.Context) error {
	h.uc.CloseCart()
	return c.JSON(http.StatusOK, h.uc.State())
}

func (h *CartHandler) getItemQuantity(c echo.Context) error {
	id, err := parseItemID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, ItemQuantityResponse{
		ID:       id,
		Quantity: h.uc.GetItemQuantity(id),
	})
}

func (h *CartHandler) increase(c echo.Context) error {
	id, err := parseItemID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	if err := h.uc.IncreaseCartQuantity(c.Request().Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, h.uc.State())
}

func (h *CartHandler) decrease(c echo.Context) error {
	id, err := parseItemID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	if err := h.uc.DecreaseCartQuantity(c.Request().Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, h.uc.State())
}

func (h *CartHandler) remove(c echo.Context) error {
	id, err := parseItemID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}

	if err := h.uc.RemoveFromCart(c.Request().Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, h.uc.State())
}

// 整数でなければ400
func parseItemID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
