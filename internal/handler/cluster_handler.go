package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/service"
)

// ClusterHandler handles topic cluster CRUD endpoints
type ClusterHandler struct {
	clusterService service.NewsClusterService
	logger         *zap.Logger
}

// NewClusterHandler creates a new cluster handler
func NewClusterHandler(clusterService service.NewsClusterService, logger *zap.Logger) *ClusterHandler {
	return &ClusterHandler{clusterService: clusterService, logger: logger}
}

// List returns a page of clusters, optionally narrowed by topic and
// keywords query parameters. Member items are omitted unless
// includeItems=true.
func (h *ClusterHandler) List(c *gin.Context) {
	page, size := paging(c)
	filter := repository.NewsClusterFilter{
		Topic:    c.Query("topic"),
		Keywords: c.Query("keywords"),
	}
	includeItems := boolQuery(c, "includeItems", false)

	result, err := h.clusterService.List(c.Request.Context(), filter, page, size, includeItems)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one cluster by id. Member items are included by default and
// can be skipped with includeItems=false.
func (h *ClusterHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	includeItems := boolQuery(c, "includeItems", true)

	cluster, err := h.clusterService.GetByID(c.Request.Context(), id, includeItems)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cluster)
}

// Create stores a new cluster
func (h *ClusterHandler) Create(c *gin.Context) {
	var req dto.NewsClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse(err))
		return
	}

	cluster, err := h.clusterService.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewsClusterResponseFromCluster(cluster, nil))
}

// Update replaces a cluster's descriptive fields
func (h *ClusterHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.NewsClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse(err))
		return
	}

	cluster, err := h.clusterService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewsClusterResponseFromCluster(cluster, nil))
}

// Delete removes a cluster
func (h *ClusterHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.clusterService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClusterHandler) respondError(c *gin.Context, err error) {
	respondServiceError(c, err, h.logger)
}

func boolQuery(c *gin.Context, name string, fallback bool) bool {
	value, ok := c.GetQuery(name)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
