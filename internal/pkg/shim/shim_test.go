package shim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hadoop-cluster-backend/internal/model"
)

const catalogYAML = `
shims:
  - id: cdh514
    vendor: Cloudera
    version: "5.14"
  - id: apache
    vendor: apache
    version: "3.1"
  - id: mapr46
    vendor: MapR
    version: "4.6"
`

func TestFileSupplier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shims.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o644))

	ids, err := FileSupplier(path)()
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, model.ShimIdentifier{ID: "cdh514", Vendor: "Cloudera", Version: "5.14"}, ids[0])
}

func TestFileSupplierDefault(t *testing.T) {
	ids, err := FileSupplier("")()
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), ids)
}

func TestFileSupplierMissingFile(t *testing.T) {
	_, err := FileSupplier(filepath.Join(t.TempDir(), "missing.yaml"))()
	assert.Error(t, err)
}

func TestParseCatalogRejectsMissingID(t *testing.T) {
	_, err := ParseCatalog([]byte("shims:\n  - vendor: x\n"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	ids, err := ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	s, err := Resolve(ids, "cloudera", "5.14")
	require.NoError(t, err)
	assert.Equal(t, "cdh514", s.ID)

	_, err = Resolve(ids, "Claudera", "5.14")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(ids, "Cloudera", "6.1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithoutAndByID(t *testing.T) {
	ids := DefaultCatalog()

	filtered := Without(ids, "apache")
	assert.Len(t, filtered, len(ids)-1)
	_, ok := ByID(filtered, "apache")
	assert.False(t, ok)

	s, ok := ByID(ids, "hdp30")
	assert.True(t, ok)
	assert.Equal(t, "Hortonworks", s.Vendor)
}
