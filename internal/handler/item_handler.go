package handler

import (
	"net/http"

	"github.com/Eursukkul/shareit/internal/dto"
	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	svc      service.ItemService
	comments service.CommentService
}

func NewItemHandler(svc service.ItemService, comments service.CommentService) *ItemHandler {
	return &ItemHandler{svc: svc, comments: comments}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	items := e.Group("/items", middleware.ActingUser())
	items.POST("", h.CreateItem)
	items.GET("", h.ListOwnerItems)
	items.GET("/search", h.SearchItems)
	items.GET("/:id", h.GetItem)
	items.PATCH("/:id", h.UpdateItem)
	items.POST("/:id/comment", h.CreateComment)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req dto.CreateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.svc.CreateItem(c.Request().Context(), middleware.UserID(c), service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), middleware.UserID(c), itemID, service.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	details, err := h.svc.GetItem(c.Request().Context(), itemID, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDetailsResponse(details))
}

func (h *ItemHandler) ListOwnerItems(c echo.Context) error {
	details, err := h.svc.ListOwnerItems(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemDetailsResponses(details))
}

func (h *ItemHandler) SearchItems(c echo.Context) error {
	items, err := h.svc.SearchItems(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToItemResponses(items))
}

func (h *ItemHandler) CreateComment(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.CreateComment(c.Request().Context(), middleware.UserID(c), itemID, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}
