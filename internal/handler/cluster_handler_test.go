package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/clusterfs"
	"hadoop-cluster-backend/internal/pkg/diagnostics"
	"hadoop-cluster-backend/internal/pkg/encr"
	"hadoop-cluster-backend/internal/pkg/logger"
	"hadoop-cluster-backend/internal/pkg/namedcluster"
	"hadoop-cluster-backend/internal/pkg/shim"
	"hadoop-cluster-backend/internal/service"
)

const coreSite = `<configuration><property><name>fs.defaultFS</name><value>hdfs://namenode:8020</value></property></configuration>`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	registry, err := namedcluster.OpenSQLite(context.Background(), filepath.Join(dir, "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Close() })

	svc := service.NewClusterService(service.ClusterServiceDeps{
		Registry:       registry,
		Store:          clusterfs.NewOSStore(filepath.Join(dir, "Configs")),
		Encoder:        encr.New("test-seed"),
		Shims:          shim.StaticSupplier(shim.DefaultCatalog()),
		Runner:         diagnostics.NewRunner(time.Second, diagnostics.DefaultCheckers(time.Second)),
		InternalShimID: "apache",
		DriverFs:       afero.NewMemMapFs(),
		DriverDir:      "/drivers",
	})
	h := NewClusterHandler(svc, logger.NewNopLogger(), []string{"http://localhost:3000"}, 10)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/clusters", h.ListClusters)
		api.POST("/clusters", h.CreateCluster)
		api.PUT("/clusters", h.EditCluster)
		api.POST("/clusters/import", h.ImportCluster)
		api.GET("/clusters/:name", h.GetCluster)
		api.DELETE("/clusters/:name", h.DeleteCluster)
		api.POST("/clusters/:name/tests", h.RunTests)
		api.GET("/clusters/:name/tests", h.LastTestResults)
		api.GET("/clusters/:name/tests/stream", h.StreamTests)
		api.GET("/shims", h.GetShims)
		api.POST("/drivers", h.InstallDriver)
		api.GET("/files/valid", h.IsValidConfigurationFile)
	}
	return r
}

// multipartBody encodes data as the "data" field plus files keyed by field.
func multipartBody(t *testing.T, data any, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, w.WriteField(model.FormFieldData, string(raw)))
	}
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func perform(r http.Handler, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCluster(t *testing.T, r http.Handler, m model.ClusterModel) model.ClusterResult {
	t.Helper()
	body, ct := multipartBody(t, m, map[string][2]string{"core-site.xml": {"core-site.xml", coreSite}})
	w := perform(r, http.MethodPost, "/api/clusters", body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.ClusterResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestCreateAndGetCluster(t *testing.T) {
	r := newTestRouter(t)

	res := createCluster(t, r, model.ClusterModel{Name: "ncTest", ShimVendor: "Cloudera", ShimVersion: "5.14", HdfsHost: "namenode"})
	assert.Equal(t, "ncTest", res.NamedCluster)

	w := perform(r, http.MethodGet, "/api/clusters/NCTEST", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.ClusterModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "ncTest", got.Name)
	assert.Equal(t, "namenode", got.HdfsHost)
	assert.Equal(t, []string{"core-site.xml"}, got.SiteFiles)

	w = perform(r, http.MethodGet, "/api/clusters", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.ClusterModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestCreateClusterFailureIsReportedInBody(t *testing.T) {
	r := newTestRouter(t)

	res := createCluster(t, r, model.ClusterModel{Name: "ncTest", ShimVendor: "Nobody", ShimVersion: "1.0"})
	assert.Equal(t, "", res.NamedCluster)
	assert.NotEmpty(t, res.Reason)
}

func TestCreateClusterJSON(t *testing.T) {
	r := newTestRouter(t)

	raw, err := json.Marshal(model.ClusterModel{Name: "ncJson"})
	require.NoError(t, err)
	w := perform(r, http.MethodPost, "/api/clusters", bytes.NewBuffer(raw), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"namedCluster":"ncJson"}`, w.Body.String())
}

func TestCreateClusterBadRequest(t *testing.T) {
	r := newTestRouter(t)

	body, ct := multipartBody(t, nil, map[string][2]string{"core-site.xml": {"core-site.xml", coreSite}})
	w := perform(r, http.MethodPost, "/api/clusters", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/api/clusters", bytes.NewBufferString("{"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.False(t, errResp.Success)
	assert.Equal(t, 1001, errResp.Code)
}

func TestGetClusterNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/clusters/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, 2001, errResp.Code)

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/api/clusters/missing", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodPost, "/api/clusters/missing/tests", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/clusters/missing/tests", nil, "").Code)
}

func TestEditClusterRename(t *testing.T) {
	r := newTestRouter(t)
	require.True(t, createCluster(t, r, model.ClusterModel{Name: "ncTest"}).OK())

	body, ct := multipartBody(t, model.ClusterModel{Name: "ncRenamed", OldName: "ncTest"}, nil)
	w := perform(r, http.MethodPut, "/api/clusters?overwrite=true", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"namedCluster":"ncRenamed"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/clusters/ncTest", nil, "").Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/clusters/ncRenamed", nil, "").Code)
}

func TestImportCluster(t *testing.T) {
	r := newTestRouter(t)

	body, ct := multipartBody(t, model.ClusterModel{Name: "imported"}, map[string][2]string{
		"core-site.xml": {"core-site.xml", coreSite},
	})
	w := perform(r, http.MethodPost, "/api/clusters/import", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"namedCluster":"imported"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/clusters/imported", nil, "")
	var got model.ClusterModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "namenode", got.HdfsHost)
	assert.Equal(t, "8020", got.HdfsPort)
}

func TestDeleteCluster(t *testing.T) {
	r := newTestRouter(t)
	require.True(t, createCluster(t, r, model.ClusterModel{Name: "ncTest"}).OK())

	assert.Equal(t, http.StatusOK, perform(r, http.MethodDelete, "/api/clusters/ncTest", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/clusters/ncTest", nil, "").Code)
}

func TestGetShims(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/shims", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var ids []model.ShimIdentifier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ids))
	assert.Len(t, ids, len(shim.DefaultCatalog())-1)
	for _, id := range ids {
		assert.NotEqual(t, "apache", id.ID)
	}
}

func TestIsValidConfigurationFile(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/files/valid?name=core-site.xml", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"core-site.xml","valid":true}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/files/valid?name=notes.txt", nil, "")
	assert.JSONEq(t, `{"name":"notes.txt","valid":false}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/files/valid", nil, "").Code)
}

func TestInstallDriver(t *testing.T) {
	r := newTestRouter(t)

	body, ct := multipartBody(t, nil, map[string][2]string{model.FormFieldDriver: {"driver.kar", "kar"}})
	w := perform(r, http.MethodPost, "/api/drivers", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"installed":true}`, w.Body.String())

	body, ct = multipartBody(t, nil, nil)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/api/drivers", body, ct).Code)
}

func TestRunTestsAndLastResults(t *testing.T) {
	r := newTestRouter(t)
	require.True(t, createCluster(t, r, model.ClusterModel{Name: "ncTest"}).OK())

	w := perform(r, http.MethodPost, "/api/clusters/ncTest/tests", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var run model.TestRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.Len(t, run.Categories, 5)
	assert.Equal(t, model.CategoryHadoopFileSystem, run.Categories[0].Name)

	w = perform(r, http.MethodGet, "/api/clusters/ncTest/tests", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cached model.TestRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cached))
	assert.Equal(t, run.ID, cached.ID)
}

func TestStreamTests(t *testing.T) {
	r := newTestRouter(t)
	require.True(t, createCluster(t, r, model.ClusterModel{Name: "ncTest"}).OK())

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/clusters/ncTest/tests/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var events []model.TestProgress
	for {
		var p model.TestProgress
		if err := conn.ReadJSON(&p); err != nil {
			break
		}
		events = append(events, p)
		if p.Done {
			break
		}
	}
	require.Len(t, events, 6)
	assert.Equal(t, model.CategoryHadoopFileSystem, events[0].Category)
	assert.True(t, events[5].Done)
	require.NotNil(t, events[5].Run)
	assert.Len(t, events[5].Run.Categories, 5)

	_, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/clusters/missing/tests/stream", nil)
	assert.Error(t, err)
}
