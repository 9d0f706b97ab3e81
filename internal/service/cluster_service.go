package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magiconair/properties"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/clusterfs"
	"hadoop-cluster-backend/internal/pkg/diagnostics"
	"hadoop-cluster-backend/internal/pkg/encr"
	"hadoop-cluster-backend/internal/pkg/logger"
	"hadoop-cluster-backend/internal/pkg/metrics"
	"hadoop-cluster-backend/internal/pkg/namedcluster"
	"hadoop-cluster-backend/internal/pkg/shim"
	"hadoop-cluster-backend/internal/pkg/sitefile"
	"hadoop-cluster-backend/pkg/utils"
)

var (
	ErrClusterNotFound = errors.New("named cluster not found")
	ErrInvalidShim     = errors.New("shim vendor and version are not installed")
	ErrClusterExists   = errors.New("a named cluster with this name already exists")
)

const (
	opCreate  = "create"
	opEdit    = "edit"
	opImport  = "import"
	opDelete  = "delete"
	opInstall = "install_driver"
	opTest    = "run_tests"
)

// ProgressListener receives one event per completed diagnostic test and a
// final event carrying the whole run.
type ProgressListener func(model.TestProgress)

type ClusterServiceDeps struct {
	Registry namedcluster.Service
	Store    *clusterfs.Store
	Encoder  encr.Encoder
	Shims    shim.Supplier
	Runner   *diagnostics.Runner
	Logger   *logger.Logger

	InternalShimID string
	DriverFs       afero.Fs
	DriverDir      string
	DriverTimeout  time.Duration
	ResultsTTL     time.Duration
}

type ClusterService struct {
	registry       namedcluster.Service
	store          *clusterfs.Store
	encoder        encr.Encoder
	shims          shim.Supplier
	runner         *diagnostics.Runner
	internalShimID string
	driverFs       afero.Fs
	driverDir      string
	driverTimeout  time.Duration
	results        *cache.Cache
	locks          *keyedMutex
	logger         *logger.Logger
}

func NewClusterService(deps ClusterServiceDeps) *ClusterService {
	driverFs := deps.DriverFs
	if driverFs == nil {
		driverFs = afero.NewOsFs()
	}
	driverTimeout := deps.DriverTimeout
	if driverTimeout <= 0 {
		driverTimeout = 2 * time.Minute
	}
	ttl := deps.ResultsTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ClusterService{
		registry:       deps.Registry,
		store:          deps.Store,
		encoder:        deps.Encoder,
		shims:          deps.Shims,
		runner:         deps.Runner,
		internalShimID: deps.InternalShimID,
		driverFs:       driverFs,
		driverDir:      deps.DriverDir,
		driverTimeout:  driverTimeout,
		results:        cache.New(ttl, 2*ttl),
		locks:          newKeyedMutex(),
		logger:         log,
	}
}

type saveRequest struct {
	op        string
	model     model.ClusterModel
	files     map[string]*model.UploadedFile
	overwrite bool
}

// CreateNamedCluster registers a new cluster, replacing any cluster whose
// name matches case-insensitively.
func (s *ClusterService) CreateNamedCluster(ctx context.Context, m *model.ClusterModel, files map[string]*model.UploadedFile) model.ClusterResult {
	return s.save(ctx, opCreate, m, files, true)
}

// EditNamedCluster updates the cluster named m.OldName (or m.Name), renaming
// it when the names differ.
func (s *ClusterService) EditNamedCluster(ctx context.Context, m *model.ClusterModel, overwrite bool, files map[string]*model.UploadedFile) model.ClusterResult {
	return s.save(ctx, opEdit, m, files, overwrite)
}

// ImportNamedCluster is a create whose endpoints come from the uploaded
// site files.
func (s *ClusterService) ImportNamedCluster(ctx context.Context, m *model.ClusterModel, files map[string]*model.UploadedFile) model.ClusterResult {
	return s.save(ctx, opImport, m, files, true)
}

func (s *ClusterService) save(ctx context.Context, op string, m *model.ClusterModel, files map[string]*model.UploadedFile, overwrite bool) model.ClusterResult {
	if m == nil {
		return s.fail(op, "", errors.New("missing named cluster"))
	}
	s.logger.ClusterOperation(op, m.Name)

	nc, err := s.saveNamedCluster(ctx, saveRequest{op: op, model: *m, files: files, overwrite: overwrite})
	if err != nil {
		return s.fail(op, m.Name, err)
	}

	metrics.ObserveOperation(op, true)
	s.logger.ClusterSuccess(op, nc.Name)
	return model.Succeeded(nc.Name)
}

func (s *ClusterService) fail(op, name string, err error) model.ClusterResult {
	metrics.ObserveOperation(op, false)
	s.logger.ClusterError(op, name, err)
	return model.Failed(err.Error())
}

func (s *ClusterService) saveNamedCluster(ctx context.Context, req saveRequest) (*namedcluster.NamedCluster, error) {
	m := &req.model
	if err := utils.ValidateClusterName(m.Name); err != nil {
		return nil, err
	}
	if req.op != opImport {
		if err := validatePorts(m); err != nil {
			return nil, err
		}
	}
	uploads, err := classifyUploads(req.files)
	if err != nil {
		return nil, err
	}
	shimID, err := s.resolveShim(m.ShimVendor, m.ShimVersion)
	if err != nil {
		return nil, err
	}

	lookup := m.Name
	if req.op == opEdit && strings.TrimSpace(m.OldName) != "" {
		lookup = m.OldName
	}
	unlock := s.locks.lock(namedcluster.Key(lookup), namedcluster.Key(m.Name))
	defer unlock()

	var existing *namedcluster.NamedCluster
	if req.op == opEdit {
		existing, err = s.registry.GetByName(ctx, lookup)
		if err != nil && !errors.Is(err, namedcluster.ErrNotFound) {
			return nil, err
		}
	}
	renaming := existing != nil && namedcluster.Key(lookup) != namedcluster.Key(m.Name)

	if req.op == opEdit && (existing == nil || renaming) && !req.overwrite {
		taken, err := s.registry.Contains(ctx, m.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", ErrClusterExists, m.Name)
		}
	}

	var nc *namedcluster.NamedCluster
	if existing != nil {
		nc = existing.Clone()
		if shimID == "" {
			shimID = nc.ShimIdentifier
		}
	} else {
		nc = s.registry.Template()
	}

	if req.op == opImport {
		ep := sitefile.Extract(uploads.siteContents())
		applyEndpoints(m, ep)
		if ep.Kerberos && strings.TrimSpace(m.SecurityType) == "" {
			m.SecurityType = model.SecurityKerberos
			m.KerberosSubType = model.KerberosPassword
		}
	}
	if err := s.applyModel(nc, m, shimID); err != nil {
		return nil, err
	}

	// build the new config dir aside and swap it in once complete
	stage, err := s.store.TempDir(".staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer func() {
		_ = s.store.Remove(stage)
	}()

	var replaced []string
	if dir, ok := s.store.FindDir(m.Name); ok {
		replaced = append(replaced, dir)
	}
	source := ""
	if existing != nil {
		if dir, ok := s.store.FindDir(lookup); ok {
			source = dir
			if !slices.Contains(replaced, dir) {
				replaced = append(replaced, dir)
			}
		}
	}

	if err := s.stage(stage, source, nc, m, uploads, req.overwrite); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, nc, stage, replaced); err != nil {
		return nil, err
	}

	if renaming {
		if err := s.registry.Delete(ctx, lookup); err != nil && !errors.Is(err, namedcluster.ErrNotFound) {
			s.logger.Warnf("failed to drop registry entry %s after rename: %v", lookup, err)
		}
		s.results.Delete(namedcluster.Key(lookup))
	}
	return nc, nil
}

// stage builds the complete config dir of m in the scratch dir stage,
// starting from a copy of source when the cluster already has one.
func (s *ClusterService) stage(stage, source string, nc *namedcluster.NamedCluster, m *model.ClusterModel, uploads *uploadSet, overwrite bool) error {
	if source != "" {
		if err := s.store.Copy(source, stage); err != nil {
			return fmt.Errorf("copy config dir: %w", err)
		}
	}
	p, err := s.store.LoadProperties(stage)
	if err != nil {
		return err
	}
	if source != "" {
		if err := s.relocateKeytabs(p, source, m.Name); err != nil {
			return err
		}
	}
	if err := s.writeSiteFiles(nc, stage, uploads.siteFiles, overwrite); err != nil {
		return err
	}
	return s.writeProperties(stage, m, p, uploads)
}

// commit parks the directories being replaced, moves stage into place and
// saves nc. Any failure puts the previous directories and registry record
// back.
func (s *ClusterService) commit(ctx context.Context, nc *namedcluster.NamedCluster, stage string, replaced []string) (err error) {
	var undo rollback
	defer func() {
		if err == nil {
			return
		}
		if rerr := undo.run(); rerr != nil {
			s.logger.ClusterError("rollback", nc.Name, rerr)
		}
	}()
	undoCtx := context.WithoutCancel(ctx)

	var backups []string
	for _, dir := range replaced {
		dir := dir // per-iteration copy for the undo closure (go 1.21 loop semantics)
		backup, err := s.store.TempDir(".backup-")
		if err != nil {
			return fmt.Errorf("create backup dir: %w", err)
		}
		if err := s.store.Move(dir, backup); err != nil {
			_ = s.store.Remove(backup)
			return fmt.Errorf("back up config dir %s: %w", dir, err)
		}
		undo.push(func() error { return s.store.Move(backup, dir) })
		backups = append(backups, backup)
	}

	undo.push(func() error { return s.store.Remove(nc.Name) })
	if err := s.store.Move(stage, nc.Name); err != nil {
		return fmt.Errorf("install config dir: %w", err)
	}

	previous, err := s.registry.GetByName(ctx, nc.Name)
	if err != nil && !errors.Is(err, namedcluster.ErrNotFound) {
		return err
	}
	if err := s.registry.Save(ctx, nc); err != nil {
		return fmt.Errorf("save named cluster: %w", err)
	}
	undo.push(func() error {
		if previous != nil {
			return s.registry.Save(undoCtx, previous)
		}
		return s.registry.Delete(undoCtx, nc.Name)
	})

	for _, backup := range backups {
		if err := s.store.Remove(backup); err != nil {
			s.logger.Warnf("failed to remove backup dir %s: %v", backup, err)
		}
	}
	return nil
}

// relocateKeytabs points keytab locations inside the from dir at the same
// files under the to dir.
func (s *ClusterService) relocateKeytabs(p *properties.Properties, from, to string) error {
	for _, k := range keytabKeys {
		loc := p.GetString(k, "")
		if !s.store.Owns(from, loc) {
			continue
		}
		if _, _, err := p.Set(k, s.store.Path(to, filepath.Base(loc))); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClusterService) applyModel(nc *namedcluster.NamedCluster, m *model.ClusterModel, shimID string) error {
	hdfsPassword, err := s.encoder.Encrypt(m.HdfsPassword)
	if err != nil {
		return fmt.Errorf("encrypt hdfs password: %w", err)
	}

	nc.Name = m.Name
	nc.ShimIdentifier = shimID
	nc.HdfsHost = strings.TrimSpace(m.HdfsHost)
	nc.HdfsPort = strings.TrimSpace(m.HdfsPort)
	nc.HdfsUsername = m.HdfsUsername
	nc.HdfsPassword = hdfsPassword
	nc.JobTrackerHost = strings.TrimSpace(m.JobTrackerHost)
	nc.JobTrackerPort = strings.TrimSpace(m.JobTrackerPort)
	nc.ZooKeeperHost = strings.TrimSpace(m.ZooKeeperHost)
	nc.ZooKeeperPort = strings.TrimSpace(m.ZooKeeperPort)
	nc.OozieURL = strings.TrimSpace(m.OozieURL)
	nc.KafkaBootstrapServers = strings.TrimSpace(m.KafkaBootstrapServers)

	nc.UseGateway = securityType(m) == model.SecurityKnox
	if !nc.UseGateway {
		nc.GatewayURL, nc.GatewayUsername, nc.GatewayPassword = "", "", ""
		return nil
	}
	gatewayPassword, err := s.encoder.Encrypt(m.GatewayPassword)
	if err != nil {
		return fmt.Errorf("encrypt gateway password: %w", err)
	}
	nc.GatewayURL = strings.TrimSpace(m.GatewayURL)
	nc.GatewayUsername = m.GatewayUsername
	nc.GatewayPassword = gatewayPassword
	return nil
}

// writeSiteFiles attaches uploaded site files and writes them to dir. Without
// overwrite a site file the cluster already has is kept.
func (s *ClusterService) writeSiteFiles(nc *namedcluster.NamedCluster, dir string, files []*model.UploadedFile, overwrite bool) error {
	for _, f := range files {
		if _, ok := nc.SiteFile(f.FileName); ok && !overwrite {
			s.logger.Debugf("keeping existing site file %s of %s", f.FileName, nc.Name)
			continue
		}
		nc.AddSiteFile(f.FileName, string(f.Content))
		if _, err := s.store.WriteFile(dir, f.FileName, f.Content); err != nil {
			return err
		}
	}
	return nil
}

// writeProperties writes keytabs and config.properties into dir. Keytab
// locations are recorded as they will be once dir becomes the config dir
// of m.
func (s *ClusterService) writeProperties(dir string, m *model.ClusterModel, p *properties.Properties, uploads *uploadSet) error {
	if uploads.properties != nil {
		p.Merge(uploads.properties)
	}

	var keytabs keytabLocations
	if f := uploads.keytabAuth; f != nil {
		if _, err := s.store.WriteFile(dir, f.FileName, f.Content); err != nil {
			return err
		}
		keytabs.auth = s.store.Path(m.Name, f.FileName)
	}
	if f := uploads.keytabImp; f != nil {
		if _, err := s.store.WriteFile(dir, f.FileName, f.Content); err != nil {
			return err
		}
		keytabs.imp = s.store.Path(m.Name, f.FileName)
	}

	stale, err := applySecurity(p, m, keytabs, s.encoder)
	if err != nil {
		return err
	}
	if err := s.store.SaveProperties(dir, p); err != nil {
		return err
	}

	for _, loc := range stale {
		if !s.store.Owns(m.Name, loc) {
			continue
		}
		if err := s.store.RemoveFile(dir, filepath.Base(loc)); err != nil {
			s.logger.Warnf("failed to remove keytab %s: %v", loc, err)
		}
	}
	return nil
}

func (s *ClusterService) resolveShim(vendor, version string) (string, error) {
	if strings.TrimSpace(vendor) == "" {
		return "", nil
	}
	ids, err := s.shims()
	if err != nil {
		return "", fmt.Errorf("load shims: %w", err)
	}
	id, err := shim.Resolve(ids, vendor, version)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s", ErrInvalidShim, vendor, version)
	}
	return id.ID, nil
}

// GetNamedCluster returns the cluster matching name case-insensitively.
func (s *ClusterService) GetNamedCluster(ctx context.Context, name string) (*model.ClusterModel, error) {
	nc, err := s.registry.GetByName(ctx, name)
	if errors.Is(err, namedcluster.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrClusterNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return s.toModel(nc), nil
}

// ListNamedClusters returns every registered cluster sorted by name.
func (s *ClusterService) ListNamedClusters(ctx context.Context) ([]*model.ClusterModel, error) {
	list, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.ClusterModel, 0, len(list))
	for _, nc := range list {
		out = append(out, s.toModel(nc))
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *ClusterService) toModel(nc *namedcluster.NamedCluster) *model.ClusterModel {
	m := &model.ClusterModel{
		Name:                  nc.Name,
		HdfsHost:              nc.HdfsHost,
		HdfsPort:              nc.HdfsPort,
		HdfsUsername:          nc.HdfsUsername,
		HdfsPassword:          s.decrypt(nc.Name, nc.HdfsPassword),
		JobTrackerHost:        nc.JobTrackerHost,
		JobTrackerPort:        nc.JobTrackerPort,
		ZooKeeperHost:         nc.ZooKeeperHost,
		ZooKeeperPort:         nc.ZooKeeperPort,
		OozieURL:              nc.OozieURL,
		KafkaBootstrapServers: nc.KafkaBootstrapServers,
		SiteFiles:             nc.SiteFileNames(),
	}

	if nc.ShimIdentifier != "" {
		if ids, err := s.shims(); err == nil {
			if id, ok := shim.ByID(ids, nc.ShimIdentifier); ok {
				m.ShimVendor, m.ShimVersion = id.Vendor, id.Version
			}
		}
	}

	if nc.UseGateway {
		m.SecurityType = model.SecurityKnox
		m.GatewayURL = nc.GatewayURL
		m.GatewayUsername = nc.GatewayUsername
		m.GatewayPassword = s.decrypt(nc.Name, nc.GatewayPassword)
		return m
	}

	m.SecurityType = model.SecurityNone
	dir, ok := s.store.FindDir(nc.Name)
	if !ok {
		return m
	}
	p, err := s.store.LoadProperties(dir)
	if err != nil {
		s.logger.Warnf("failed to read security settings of %s: %v", nc.Name, err)
		return m
	}
	if err := readSecurity(p, m, s.encoder); err != nil {
		s.logger.Warnf("failed to read security settings of %s: %v", nc.Name, err)
	}
	return m
}

func (s *ClusterService) decrypt(cluster, value string) string {
	plain, err := s.encoder.Decrypt(value)
	if err != nil {
		s.logger.Warnf("failed to decrypt password of %s: %v", cluster, err)
		return ""
	}
	return plain
}

// DeleteNamedCluster removes the registry entry and the config dir.
func (s *ClusterService) DeleteNamedCluster(ctx context.Context, name string) error {
	unlock := s.locks.lock(namedcluster.Key(name))
	defer unlock()

	s.logger.ClusterOperation(opDelete, name)
	err := s.registry.Delete(ctx, name)
	if errors.Is(err, namedcluster.ErrNotFound) {
		metrics.ObserveOperation(opDelete, false)
		return fmt.Errorf("%w: %s", ErrClusterNotFound, name)
	}
	if dir, ok := s.store.FindDir(name); ok {
		err = multierr.Append(err, s.store.Remove(dir))
	}
	s.results.Delete(namedcluster.Key(name))

	metrics.ObserveOperation(opDelete, err == nil)
	if err != nil {
		s.logger.ClusterError(opDelete, name, err)
		return err
	}
	s.logger.ClusterSuccess(opDelete, name)
	return nil
}

func (s *ClusterService) IsValidConfigurationFile(name string) bool {
	return sitefile.IsValidConfigurationFile(name)
}

// GetShimIdentifiers lists the installed shims without the internal one.
// A catalog that cannot be read yields an empty list.
func (s *ClusterService) GetShimIdentifiers() []model.ShimIdentifier {
	ids, err := s.shims()
	if err != nil {
		s.logger.Errorf("failed to load shim identifiers: %v", err)
		return []model.ShimIdentifier{}
	}
	return shim.Without(ids, s.internalShimID)
}

// InstallDriver copies a driver archive into the deployment dir. The copy is
// bounded by the install timeout and any failure is reported as not installed.
func (s *ClusterService) InstallDriver(ctx context.Context, fileName string, r io.Reader) model.InstallResult {
	name := utils.SanitizeFileName(fileName)
	s.logger.Infof("installing driver %s into %s", name, s.driverDir)

	if err := s.copyDriver(ctx, name, r); err != nil {
		metrics.DriverInstalls.WithLabelValues("failure").Inc()
		s.logger.Errorf("failed to install driver %q: %v", fileName, err)
		return model.InstallResult{Installed: false, Message: err.Error()}
	}

	metrics.DriverInstalls.WithLabelValues("success").Inc()
	s.logger.Infof("driver %s installed", name)
	return model.InstallResult{Installed: true}
}

func (s *ClusterService) copyDriver(ctx context.Context, name string, r io.Reader) (err error) {
	if name == "" {
		return errors.New("driver file name is empty")
	}
	if r == nil {
		return errors.New("driver content is missing")
	}
	if s.driverDir == "" {
		return errors.New("driver deployment directory is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.driverTimeout)
	defer cancel()
	// ctxReader only sees the deadline between reads; closing the source
	// unblocks a read stuck on a live stream.
	if c, ok := r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stop()
	}

	if err := s.driverFs.MkdirAll(s.driverDir, 0o755); err != nil {
		return fmt.Errorf("create deployment dir: %w", err)
	}
	dst := filepath.Join(s.driverDir, name)
	tmp := dst + ".part"
	out, err := s.driverFs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			_ = s.driverFs.Remove(tmp)
		}
	}()

	if _, err := io.Copy(out, &ctxReader{ctx: ctx, r: r}); err != nil {
		return multierr.Append(fmt.Errorf("copy driver: %w", err), out.Close())
	}
	if err := out.Close(); err != nil {
		return err
	}
	return s.driverFs.Rename(tmp, dst)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// RunTests runs the diagnostics of a cluster. listener may be nil.
func (s *ClusterService) RunTests(ctx context.Context, listener ProgressListener, clusterName string) (*model.TestRun, error) {
	nc, err := s.registry.GetByName(ctx, clusterName)
	if errors.Is(err, namedcluster.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrClusterNotFound, clusterName)
	}
	if err != nil {
		return nil, err
	}

	run := &model.TestRun{ID: uuid.NewString(), Cluster: nc.Name, StartedAt: time.Now()}
	s.logger.ClusterOperation(opTest, nc.Name)

	run.Categories = s.runner.Run(ctx, nc, func(category string, res model.TestResult) {
		metrics.DiagnosticTests.WithLabelValues(category, res.Status).Inc()
		s.logger.DiagnosticResult(nc.Name, category, res.Name, res.Status)
		if listener != nil {
			listener(model.TestProgress{RunID: run.ID, Category: category, Test: res})
		}
	})
	run.CompletedAt = time.Now()

	if err := ctx.Err(); err != nil {
		// checks cut short by cancellation report failures that say nothing
		// about the cluster, so the run is not kept as its last result
		run.Aborted = true
		metrics.ObserveOperation(opTest, false)
		s.logger.ClusterError(opTest, nc.Name, err)
	} else {
		s.results.Set(namedcluster.Key(nc.Name), run, cache.DefaultExpiration)
		metrics.ObserveOperation(opTest, true)
		s.logger.ClusterSuccess(opTest, nc.Name)
	}
	if listener != nil {
		listener(model.TestProgress{RunID: run.ID, Done: true, Run: run})
	}
	return run, nil
}

// LastTestResults returns the most recent cached run of a cluster.
func (s *ClusterService) LastTestResults(clusterName string) (*model.TestRun, bool) {
	v, ok := s.results.Get(namedcluster.Key(clusterName))
	if !ok {
		return nil, false
	}
	return v.(*model.TestRun), true
}

func (s *ClusterService) ConfigsRootDir() string {
	return s.store.Root()
}

func validatePorts(m *model.ClusterModel) error {
	ports := []struct{ field, value string }{
		{"hdfsPort", m.HdfsPort},
		{"jobTrackerPort", m.JobTrackerPort},
		{"zooKeeperPort", m.ZooKeeperPort},
	}
	for _, p := range ports {
		if err := utils.ValidateOptionalPort(p.value); err != nil {
			return fmt.Errorf("%w: %w", utils.NewValidationError(p.field, p.value), err)
		}
	}
	return nil
}

func applyEndpoints(m *model.ClusterModel, ep sitefile.Endpoints) {
	m.HdfsHost = ep.HdfsHost
	m.HdfsPort = ep.HdfsPort
	m.JobTrackerHost = ep.JobTrackerHost
	m.JobTrackerPort = ep.JobTrackerPort
	m.ZooKeeperHost = ep.ZooKeeperHost
	m.ZooKeeperPort = ep.ZooKeeperPort
	m.OozieURL = ep.OozieURL
}
