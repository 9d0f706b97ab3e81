// Package diagnostics runs reachability checks against a named cluster's
// endpoints. A blank endpoint is reported as a warning and never probed.
package diagnostics

import (
	"context"
	"net"
	"strings"
	"time"

	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/namedcluster"
)

const (
	defaultHdfsPort       = "8020"
	defaultJobTrackerPort = "8032"
	defaultZooKeeperPort  = "2181"
	defaultKafkaPort      = "9092"
)

// Listener is called once per completed test.
type Listener func(category string, result model.TestResult)

// test is one diagnostic: targets lists what to probe (nil when the
// endpoint is not configured); any reachable target passes.
type test struct {
	name    string
	targets func(nc *namedcluster.NamedCluster) []string
	checker Checker
}

type category struct {
	name  string
	tests []test
}

type Checkers struct {
	TCP       Checker
	HTTP      Checker
	ZooKeeper Checker
}

func DefaultCheckers(timeout time.Duration) Checkers {
	return Checkers{
		TCP:       TCPChecker{},
		HTTP:      HTTPChecker{Client: newHTTPClient(timeout)},
		ZooKeeper: ZooKeeperChecker{},
	}
}

type Runner struct {
	timeout    time.Duration
	categories []category
}

func NewRunner(timeout time.Duration, c Checkers) *Runner {
	return &Runner{
		timeout: timeout,
		categories: []category{
			{
				name:  model.CategoryHadoopFileSystem,
				tests: []test{{name: "Ping file system entry point", targets: fileSystemTargets, checker: urlOrTCP(c)}},
			},
			{
				name:  model.CategoryOozie,
				tests: []test{{name: "Ping Oozie host", targets: oozieTargets, checker: c.HTTP}},
			},
			{
				name:  model.CategoryKafka,
				tests: []test{{name: "Connect to Kafka bootstrap servers", targets: kafkaTargets, checker: c.TCP}},
			},
			{
				name:  model.CategoryZookeeper,
				tests: []test{{name: "Ping Zookeeper ensemble", targets: zooKeeperTargets, checker: c.ZooKeeper}},
			},
			{
				name:  model.CategoryJobTracker,
				tests: []test{{name: "Ping job tracker / resource manager", targets: jobTrackerTargets, checker: c.TCP}},
			},
		},
	}
}

// Run executes every category in order. It never fails: unreachable
// endpoints become Fail results and blank ones Warning results.
func (r *Runner) Run(ctx context.Context, nc *namedcluster.NamedCluster, listener Listener) []model.TestCategory {
	out := make([]model.TestCategory, 0, len(r.categories))
	for _, cat := range r.categories {
		tc := model.TestCategory{Name: cat.name, Status: model.TestStatusPass}
		for _, t := range cat.tests {
			res, ran := r.runTest(ctx, nc, t)
			if ran {
				tc.Active = true
			}
			tc.Status = worse(tc.Status, res.Status)
			tc.Tests = append(tc.Tests, res)
			if listener != nil {
				listener(cat.name, res)
			}
		}
		out = append(out, tc)
	}
	return out
}

func (r *Runner) runTest(ctx context.Context, nc *namedcluster.NamedCluster, t test) (model.TestResult, bool) {
	res := model.TestResult{Name: t.name}
	targets := t.targets(nc)
	if len(targets) == 0 {
		res.Status = model.TestStatusWarning
		res.Message = "endpoint is not configured"
		return res, false
	}

	start := time.Now()
	var errs []string
	for _, target := range targets {
		res.Target = target
		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		msg, err := t.checker.Check(cctx, target)
		cancel()
		if err == nil {
			res.Status = model.TestStatusPass
			res.Message = msg
			res.DurationMs = time.Since(start).Milliseconds()
			return res, true
		}
		errs = append(errs, err.Error())
	}
	res.Status = model.TestStatusFail
	res.Message = strings.Join(errs, "; ")
	res.DurationMs = time.Since(start).Milliseconds()
	return res, true
}

func worse(a, b string) string {
	rank := map[string]int{model.TestStatusPass: 0, model.TestStatusWarning: 1, model.TestStatusFail: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// fileSystemTargets probes the Knox gateway instead of the name node when
// the cluster is accessed through one.
func fileSystemTargets(nc *namedcluster.NamedCluster) []string {
	if nc.UseGateway {
		if strings.TrimSpace(nc.GatewayURL) == "" {
			return nil
		}
		return []string{strings.TrimSpace(nc.GatewayURL)}
	}
	return hostPorts(nc.HdfsHost, nc.HdfsPort, defaultHdfsPort)
}

func urlOrTCP(c Checkers) Checker {
	return CheckerFunc(func(ctx context.Context, target string) (string, error) {
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			return c.HTTP.Check(ctx, target)
		}
		return c.TCP.Check(ctx, target)
	})
}

func oozieTargets(nc *namedcluster.NamedCluster) []string {
	if strings.TrimSpace(nc.OozieURL) == "" {
		return nil
	}
	return []string{strings.TrimSpace(nc.OozieURL)}
}

func kafkaTargets(nc *namedcluster.NamedCluster) []string {
	var out []string
	for _, server := range strings.Split(nc.KafkaBootstrapServers, ",") {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, defaultKafkaPort)
		}
		out = append(out, server)
	}
	return out
}

func zooKeeperTargets(nc *namedcluster.NamedCluster) []string {
	var out []string
	for _, host := range strings.Split(nc.ZooKeeperHost, ",") {
		out = append(out, hostPorts(host, nc.ZooKeeperPort, defaultZooKeeperPort)...)
	}
	return out
}

func jobTrackerTargets(nc *namedcluster.NamedCluster) []string {
	return hostPorts(nc.JobTrackerHost, nc.JobTrackerPort, defaultJobTrackerPort)
}

func hostPorts(host, port, defaultPort string) []string {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil
	}
	port = strings.TrimSpace(port)
	if port == "" {
		port = defaultPort
	}
	return []string{net.JoinHostPort(host, port)}
}
