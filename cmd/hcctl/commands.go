package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"hadoop-cluster-backend/internal/app"
	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/sitefile"
)

type appRunner func(run func(ctx context.Context, a *app.App, args []string) error) func(*cobra.Command, []string) error

func newListCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List named clusters",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, _ []string) error {
			clusters, err := a.ClusterService.ListNamedClusters(ctx)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Shim", "HDFS", "Security", "Site files"})
			for _, c := range clusters {
				table.Append([]string{
					c.Name,
					joinNonEmpty(c.ShimVendor, c.ShimVersion),
					joinHostPort(c.HdfsHost, c.HdfsPort),
					c.SecurityType,
					strconv.Itoa(len(c.SiteFiles)),
				})
			}
			table.Render()
			return nil
		}),
	}
}

func newGetCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one named cluster",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, args []string) error {
			c, err := a.ClusterService.GetNamedCluster(ctx, args[0])
			if err != nil {
				return err
			}
			printCluster(os.Stdout, c)
			return nil
		}),
	}
}

func newDeleteCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a named cluster and its configuration directory",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, args []string) error {
			if err := a.ClusterService.DeleteNamedCluster(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		}),
	}
}

func newImportCmd(withApp appRunner) *cobra.Command {
	var vendor, version string
	cmd := &cobra.Command{
		Use:   "import <name> <dir>",
		Short: "Import a named cluster from a directory of site files",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app.App, args []string) error {
			files, err := readSiteDir(args[1])
			if err != nil {
				return err
			}
			m := &model.ClusterModel{Name: args[0], ShimVendor: vendor, ShimVersion: version}
			res := a.ClusterService.ImportNamedCluster(ctx, m, files)
			if !res.OK() {
				return fmt.Errorf("import %s: %s", args[0], res.Reason)
			}
			fmt.Printf("imported %s (%d files)\n", res.NamedCluster, len(files))
			return nil
		}),
	}
	cmd.Flags().StringVar(&vendor, "vendor", "", "shim vendor, e.g. Cloudera")
	cmd.Flags().StringVar(&version, "version", "", "shim version, e.g. 5.14")
	return cmd
}

func newShimsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "shims",
		Short: "List installed shims",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app.App, _ []string) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Vendor", "Version"})
			for _, id := range a.ClusterService.GetShimIdentifiers() {
				table.Append([]string{id.ID, id.Vendor, id.Version})
			}
			table.Render()
			return nil
		}),
	}
}

func newTestCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Run connectivity diagnostics for a named cluster",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, args []string) error {
			run, err := a.ClusterService.RunTests(ctx, func(p model.TestProgress) {
				if !p.Done {
					fmt.Fprintf(os.Stderr, "%s / %s: %s\n", p.Category, p.Test.Name, p.Test.Status)
				}
			}, args[0])
			if err != nil {
				return err
			}
			printTestRun(os.Stdout, run)
			return nil
		}),
	}
}

// readSiteDir loads the configuration files of dir keyed by file name.
// Anything that is not a site file or config.properties is skipped.
func readSiteDir(dir string) (map[string]*model.UploadedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]*model.UploadedFile)
	for _, e := range entries {
		if e.IsDir() || !(sitefile.IsSiteFile(e.Name()) || sitefile.IsValidConfigurationFile(e.Name())) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		files[e.Name()] = &model.UploadedFile{FieldName: e.Name(), FileName: e.Name(), Content: data}
	}
	return files, nil
}

func printCluster(w io.Writer, c *model.ClusterModel) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	rows := [][]string{
		{"Name", c.Name},
		{"Shim", joinNonEmpty(c.ShimVendor, c.ShimVersion)},
		{"HDFS", joinHostPort(c.HdfsHost, c.HdfsPort)},
		{"HDFS user", c.HdfsUsername},
		{"Job tracker", joinHostPort(c.JobTrackerHost, c.JobTrackerPort)},
		{"ZooKeeper", joinHostPort(c.ZooKeeperHost, c.ZooKeeperPort)},
		{"Oozie", c.OozieURL},
		{"Kafka", c.KafkaBootstrapServers},
		{"Security", joinNonEmpty(c.SecurityType, c.KerberosSubType)},
		{"Gateway", c.GatewayURL},
		{"Site files", fmt.Sprint(c.SiteFiles)},
	}
	table.AppendBulk(rows)
	table.Render()
}

func printTestRun(w io.Writer, run *model.TestRun) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Active", "Status", "Test", "Target", "Message"})
	table.SetAutoMergeCells(true)
	table.SetRowLine(true)
	for _, c := range run.Categories {
		for _, t := range c.Tests {
			table.Append([]string{c.Name, strconv.FormatBool(c.Active), c.Status, t.Name, t.Target, t.Message})
		}
	}
	table.Render()
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func joinHostPort(host, port string) string {
	if host == "" || port == "" {
		return host
	}
	return host + ":" + port
}
