// Package shim supplies the shim identifiers a named cluster can target.
package shim

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hadoop-cluster-backend/internal/model"
)

var ErrNotFound = errors.New("shim identifier not found")

// Supplier returns the currently installed shim identifiers.
type Supplier func() ([]model.ShimIdentifier, error)

type catalogFile struct {
	Shims []model.ShimIdentifier `yaml:"shims"`
}

// DefaultCatalog is used when no catalog file is configured.
func DefaultCatalog() []model.ShimIdentifier {
	return []model.ShimIdentifier{
		{ID: "apache", Vendor: "apache", Version: "3.1"},
		{ID: "cdh514", Vendor: "Cloudera", Version: "5.14"},
		{ID: "cdh61", Vendor: "Cloudera", Version: "6.1"},
		{ID: "hdp30", Vendor: "Hortonworks", Version: "3.0"},
		{ID: "emr521", Vendor: "Amazon", Version: "5.21"},
		{ID: "mapr60", Vendor: "MapR", Version: "6.0"},
	}
}

// StaticSupplier always returns ids.
func StaticSupplier(ids []model.ShimIdentifier) Supplier {
	return func() ([]model.ShimIdentifier, error) {
		out := make([]model.ShimIdentifier, len(ids))
		copy(out, ids)
		return out, nil
	}
}

// FileSupplier reads the yaml catalog at path on every call so that newly
// installed drivers show up without a restart. An empty path falls back to
// DefaultCatalog.
func FileSupplier(path string) Supplier {
	if path == "" {
		return StaticSupplier(DefaultCatalog())
	}
	return func() ([]model.ShimIdentifier, error) {
		return LoadCatalog(path)
	}
}

func LoadCatalog(path string) ([]model.ShimIdentifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shim catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) ([]model.ShimIdentifier, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse shim catalog: %w", err)
	}
	for i, s := range f.Shims {
		if s.ID == "" {
			return nil, fmt.Errorf("shim #%d has no id", i)
		}
	}
	return f.Shims, nil
}

// Resolve finds the identifier for a vendor/version pair. Vendors compare
// case-insensitively, versions exactly.
func Resolve(ids []model.ShimIdentifier, vendor, version string) (model.ShimIdentifier, error) {
	for _, s := range ids {
		if strings.EqualFold(s.Vendor, vendor) && s.Version == version {
			return s, nil
		}
	}
	return model.ShimIdentifier{}, fmt.Errorf("%w: %s %s", ErrNotFound, vendor, version)
}

// ByID looks up a shim by id.
func ByID(ids []model.ShimIdentifier, id string) (model.ShimIdentifier, bool) {
	for _, s := range ids {
		if s.ID == id {
			return s, true
		}
	}
	return model.ShimIdentifier{}, false
}

// Without drops the identifier with the given id.
func Without(ids []model.ShimIdentifier, id string) []model.ShimIdentifier {
	out := make([]model.ShimIdentifier, 0, len(ids))
	for _, s := range ids {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
