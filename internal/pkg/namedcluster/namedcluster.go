// Package namedcluster is the registry of saved named clusters.
package namedcluster

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("named cluster not found")

type SiteFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// NamedCluster is the registry record of a cluster. Passwords are stored as
// handed in; callers encrypt them first.
type NamedCluster struct {
	Name                  string     `json:"name"`
	ShimIdentifier        string     `json:"shimIdentifier"`
	StorageScheme         string     `json:"storageScheme"`
	HdfsHost              string     `json:"hdfsHost"`
	HdfsPort              string     `json:"hdfsPort"`
	HdfsUsername          string     `json:"hdfsUsername"`
	HdfsPassword          string     `json:"hdfsPassword"`
	JobTrackerHost        string     `json:"jobTrackerHost"`
	JobTrackerPort        string     `json:"jobTrackerPort"`
	ZooKeeperHost         string     `json:"zooKeeperHost"`
	ZooKeeperPort         string     `json:"zooKeeperPort"`
	OozieURL              string     `json:"oozieUrl"`
	KafkaBootstrapServers string     `json:"kafkaBootstrapServers"`
	UseGateway            bool       `json:"useGateway"`
	GatewayURL            string     `json:"gatewayUrl"`
	GatewayUsername       string     `json:"gatewayUsername"`
	GatewayPassword       string     `json:"gatewayPassword"`
	SiteFiles             []SiteFile `json:"siteFiles"`
	LastModified          time.Time  `json:"lastModified"`
}

// AddSiteFile attaches a site file, replacing one with the same name.
func (nc *NamedCluster) AddSiteFile(name, content string) {
	for i := range nc.SiteFiles {
		if nc.SiteFiles[i].Name == name {
			nc.SiteFiles[i].Content = content
			return
		}
	}
	nc.SiteFiles = append(nc.SiteFiles, SiteFile{Name: name, Content: content})
}

func (nc *NamedCluster) SiteFile(name string) (SiteFile, bool) {
	for _, f := range nc.SiteFiles {
		if f.Name == name {
			return f, true
		}
	}
	return SiteFile{}, false
}

func (nc *NamedCluster) SiteFileNames() []string {
	names := make([]string, 0, len(nc.SiteFiles))
	for _, f := range nc.SiteFiles {
		names = append(names, f.Name)
	}
	return names
}

func (nc *NamedCluster) Clone() *NamedCluster {
	c := *nc
	c.SiteFiles = append([]SiteFile(nil), nc.SiteFiles...)
	return &c
}

// Key is the case-insensitive registry key for name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Service is the named cluster registry. Lookups are case-insensitive.
type Service interface {
	// Template returns a fresh record with defaults applied.
	Template() *NamedCluster
	List(ctx context.Context) ([]*NamedCluster, error)
	Contains(ctx context.Context, name string) (bool, error)
	GetByName(ctx context.Context, name string) (*NamedCluster, error)
	// Save inserts or replaces the record with the same key.
	Save(ctx context.Context, nc *NamedCluster) error
	Delete(ctx context.Context, name string) error
	Close() error
}
