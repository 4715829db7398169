package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// NewsHandler handles news item CRUD endpoints
type NewsHandler struct {
	itemService service.NewsItemService
	logger      *zap.Logger
}

// NewNewsHandler creates a new news item handler
func NewNewsHandler(itemService service.NewsItemService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{itemService: itemService, logger: logger}
}

// List returns a page of news items, optionally narrowed by keyword and
// category query parameters
func (h *NewsHandler) List(c *gin.Context) {
	page, size := paging(c)
	filter := repository.NewsItemFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
	}

	result, err := h.itemService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListByCategory returns a page of news items in one category
func (h *NewsHandler) ListByCategory(c *gin.Context) {
	page, size := paging(c)
	filter := repository.NewsItemFilter{Category: c.Param("category")}

	result, err := h.itemService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one news item by id
func (h *NewsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewsItemResponseFromItem(item))
}

// Create stores a new news item
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.NewsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse(err))
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewsItemResponseFromItem(item))
}

// Update replaces an existing news item
func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.NewsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse(err))
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewsItemResponseFromItem(item))
}

// Delete removes a news item
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NewsHandler) respondError(c *gin.Context, err error) {
	respondServiceError(c, err, h.logger)
}

// respondServiceError maps service and repository errors to API responses
func respondServiceError(c *gin.Context, err error, logger *zap.Logger) {
	var badRequest *service.BadRequestError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Status:  http.StatusNotFound,
			Error:   "Not Found",
			Message: "요청한 리소스를 찾을 수 없습니다.",
		})
	case errors.As(err, &badRequest):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: badRequest.Message,
		})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, internalError())
	}
}

// paging reads the zero-based page and size query parameters
func paging(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}

// pathID parses the id path parameter, writing the 400 response itself on
// failure
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: "올바르지 않은 id 입니다.",
		})
		return 0, false
	}
	return id, true
}
