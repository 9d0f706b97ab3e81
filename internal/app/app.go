// Package app wires the named cluster service from configuration. It is
// shared by the HTTP server and the hcctl CLI.
package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"hadoop-cluster-backend/internal/config"
	"hadoop-cluster-backend/internal/pkg/clusterfs"
	"hadoop-cluster-backend/internal/pkg/diagnostics"
	"hadoop-cluster-backend/internal/pkg/encr"
	"hadoop-cluster-backend/internal/pkg/logger"
	"hadoop-cluster-backend/internal/pkg/namedcluster"
	"hadoop-cluster-backend/internal/pkg/shim"
	"hadoop-cluster-backend/internal/service"
)

type App struct {
	Config         *config.Config
	Logger         *logger.Logger
	Registry       namedcluster.Service
	ClusterService *service.ClusterService
}

func New(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*App, error) {
	registry, err := namedcluster.OpenSQLite(ctx, cfg.Cluster.RegistryDB)
	if err != nil {
		return nil, fmt.Errorf("open named cluster registry: %w", err)
	}

	clusterService := service.NewClusterService(service.ClusterServiceDeps{
		Registry:       registry,
		Store:          clusterfs.NewOSStore(cfg.Cluster.ConfigsDir),
		Encoder:        encr.New(cfg.Cluster.EncryptionSeed),
		Shims:          shim.FileSupplier(cfg.Shim.CatalogFile),
		Runner:         diagnostics.NewRunner(cfg.Diagnostics.Timeout, diagnostics.DefaultCheckers(cfg.Diagnostics.Timeout)),
		Logger:         appLogger,
		InternalShimID: cfg.Shim.InternalID,
		DriverFs:       afero.NewOsFs(),
		DriverDir:      cfg.Shim.DriverDeployDir,
		DriverTimeout:  cfg.Shim.DriverInstallTimeout,
		ResultsTTL:     cfg.Diagnostics.CacheTTL,
	})

	appLogger.WithField("configs", cfg.Cluster.ConfigsDir).
		WithField("registry", cfg.Cluster.RegistryDB).
		Info("named cluster service ready")

	return &App{
		Config:         cfg,
		Logger:         appLogger,
		Registry:       registry,
		ClusterService: clusterService,
	}, nil
}

func (a *App) Close() error {
	return a.Registry.Close()
}
