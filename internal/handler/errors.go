package handler

import (
	"net/http"

	"shoppingcart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, log *logrus.Entry, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Err != nil {
			log.WithError(he.Err).Error(he.Message)
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	log.WithError(err).Error("internal error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
