package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/logger"
	"hadoop-cluster-backend/internal/service"
	"hadoop-cluster-backend/pkg/utils"
)

type ClusterHandler struct {
	clusterService *service.ClusterService
	logger         *logger.Logger
	upgrader       websocket.Upgrader
	maxUpload      int64
}

// NewClusterHandler builds the cluster endpoints. Websocket upgrades are
// accepted from allowOrigins only; maxUploadMB bounds a multipart request.
func NewClusterHandler(clusterService *service.ClusterService, appLogger *logger.Logger, allowOrigins []string, maxUploadMB int) *ClusterHandler {
	origins := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		origins[o] = struct{}{}
	}
	return &ClusterHandler{
		clusterService: clusterService,
		logger:         appLogger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		maxUpload: int64(maxUploadMB) << 20,
	}
}

func (h *ClusterHandler) ListClusters(c *gin.Context) {
	clusters, err := h.clusterService.ListNamedClusters(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.NewSystemError(err))
		return
	}
	c.JSON(http.StatusOK, clusters)
}

func (h *ClusterHandler) GetCluster(c *gin.Context) {
	var req model.ClusterNameRequest
	if err := c.ShouldBindUri(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}

	cluster, err := h.clusterService.GetNamedCluster(c.Request.Context(), req.Name)
	if err != nil {
		h.abortWithServiceError(c, req.Name, err)
		return
	}
	c.JSON(http.StatusOK, cluster)
}

func (h *ClusterHandler) CreateCluster(c *gin.Context) {
	cluster, files, ok := h.readClusterForm(c)
	if !ok {
		return
	}
	result := h.clusterService.CreateNamedCluster(c.Request.Context(), cluster, files)
	c.JSON(http.StatusOK, result)
}

func (h *ClusterHandler) EditCluster(c *gin.Context) {
	var query model.EditClusterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}
	cluster, files, ok := h.readClusterForm(c)
	if !ok {
		return
	}
	result := h.clusterService.EditNamedCluster(c.Request.Context(), cluster, query.Overwrite, files)
	c.JSON(http.StatusOK, result)
}

func (h *ClusterHandler) ImportCluster(c *gin.Context) {
	cluster, files, ok := h.readClusterForm(c)
	if !ok {
		return
	}
	result := h.clusterService.ImportNamedCluster(c.Request.Context(), cluster, files)
	c.JSON(http.StatusOK, result)
}

func (h *ClusterHandler) DeleteCluster(c *gin.Context) {
	var req model.ClusterNameRequest
	if err := c.ShouldBindUri(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}

	if err := h.clusterService.DeleteNamedCluster(c.Request.Context(), req.Name); err != nil {
		h.abortWithServiceError(c, req.Name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "namedCluster": req.Name})
}

func (h *ClusterHandler) RunTests(c *gin.Context) {
	var req model.ClusterNameRequest
	if err := c.ShouldBindUri(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}

	run, err := h.clusterService.RunTests(c.Request.Context(), nil, req.Name)
	if err != nil {
		h.abortWithServiceError(c, req.Name, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *ClusterHandler) LastTestResults(c *gin.Context) {
	var req model.ClusterNameRequest
	if err := c.ShouldBindUri(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}

	run, ok := h.clusterService.LastTestResults(req.Name)
	if !ok {
		abortWithError(c, http.StatusNotFound, &utils.APIError{
			Code:    2002,
			Message: "no test results",
			Details: req.Name,
		})
		return
	}
	c.JSON(http.StatusOK, run)
}

// StreamTests runs the diagnostics and pushes one message per completed test
// over a websocket, then the whole run.
func (h *ClusterHandler) StreamTests(c *gin.Context) {
	var req model.ClusterNameRequest
	if err := c.ShouldBindUri(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}
	if _, err := h.clusterService.GetNamedCluster(c.Request.Context(), req.Name); err != nil {
		h.abortWithServiceError(c, req.Name, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// 客户端断开时取消检测
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	_, err = h.clusterService.RunTests(ctx, func(p model.TestProgress) {
		if err := conn.WriteJSON(p); err != nil {
			h.logger.Warnf("failed to push test progress of %s: %v", req.Name, err)
			cancel()
		}
	}, req.Name)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *ClusterHandler) GetShims(c *gin.Context) {
	c.JSON(http.StatusOK, h.clusterService.GetShimIdentifiers())
}

func (h *ClusterHandler) InstallDriver(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
	fh, err := c.FormFile(model.FormFieldDriver)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewUploadError(err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewUploadError(err))
		return
	}
	defer f.Close()

	result := h.clusterService.InstallDriver(c.Request.Context(), fh.Filename, f)
	c.JSON(http.StatusOK, result)
}

func (h *ClusterHandler) IsValidConfigurationFile(c *gin.Context) {
	var query model.ValidFileQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return
	}
	c.JSON(http.StatusOK, model.ValidFileResponse{
		Name:  query.Name,
		Valid: h.clusterService.IsValidConfigurationFile(query.Name),
	})
}

// readClusterForm reads the cluster model and uploaded files. A JSON body
// carries the model alone; a multipart body carries it in the "data" field
// next to the files.
func (h *ClusterHandler) readClusterForm(c *gin.Context) (*model.ClusterModel, map[string]*model.UploadedFile, bool) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	var cluster model.ClusterModel
	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&cluster); err != nil {
			abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
			return nil, nil, false
		}
		return &cluster, nil, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewUploadError(err))
		return nil, nil, false
	}
	data := form.Value[model.FormFieldData]
	if len(data) == 0 {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(fmt.Errorf("missing %q field", model.FormFieldData)))
		return nil, nil, false
	}
	if err := json.Unmarshal([]byte(data[0]), &cluster); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.NewRequestError(err))
		return nil, nil, false
	}

	files := make(map[string]*model.UploadedFile)
	for field, headers := range form.File {
		for _, fh := range headers {
			content, err := readFormFile(fh)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, utils.NewUploadError(err))
				return nil, nil, false
			}
			key := field
			if len(headers) > 1 {
				key = field + "/" + fh.Filename
			}
			files[key] = &model.UploadedFile{FieldName: field, FileName: fh.Filename, Content: content}
		}
	}
	return &cluster, files, true
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *ClusterHandler) abortWithServiceError(c *gin.Context, name string, err error) {
	if errors.Is(err, service.ErrClusterNotFound) {
		abortWithError(c, http.StatusNotFound, utils.NewClusterNotFoundError(name))
		return
	}
	h.logger.Errorf("request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	abortWithError(c, http.StatusInternalServerError, utils.NewSystemError(err))
}

func abortWithError(c *gin.Context, status int, apiErr *utils.APIError) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{
		Success: false,
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: strings.TrimSpace(apiErr.Details),
	})
}
