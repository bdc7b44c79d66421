package handler

import (
	"net/http"

	"github.com/Eursukkul/shareit/internal/dto"
	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	svc service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) RegisterRoutes(e *echo.Echo) {
	requests := e.Group("/requests", middleware.ActingUser())
	requests.POST("", h.CreateRequest)
	requests.GET("", h.ListOwnRequests)
	requests.GET("/all", h.ListOtherRequests)
	requests.GET("/:id", h.GetRequest)
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req dto.CreateItemRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.svc.CreateRequest(c.Request().Context(), middleware.UserID(c), req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToItemRequestResponse(created))
}

func (h *RequestHandler) ListOwnRequests(c echo.Context) error {
	reqs, err := h.svc.ListOwnRequests(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponses(reqs))
}

func (h *RequestHandler) ListOtherRequests(c echo.Context) error {
	reqs, err := h.svc.ListOtherRequests(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponses(reqs))
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req, err := h.svc.GetRequest(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponse(req))
}
