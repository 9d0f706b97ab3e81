// Package sitefile classifies and reads Hadoop site configuration files.
package sitefile

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
)

const (
	CoreSite     = "core-site.xml"
	YarnSite     = "yarn-site.xml"
	HiveSite     = "hive-site.xml"
	HBaseSite    = "hbase-site.xml"
	OozieSite    = "oozie-site.xml"
	OozieDefault = "oozie-default.xml"

	ConfigProperties = "config.properties"

	siteSuffix = "-site.xml"
)

// IsValidConfigurationFile accepts *-site.xml and config.properties.
func IsValidConfigurationFile(name string) bool {
	return strings.HasSuffix(name, siteSuffix) || name == ConfigProperties
}

// IsSiteFile reports whether name is attached to a cluster as a site file.
// oozie-default.xml is not a -site file but is shipped alongside them.
func IsSiteFile(name string) bool {
	return strings.HasSuffix(name, siteSuffix) || name == OozieDefault
}

type property struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

type configuration struct {
	XMLName    xml.Name   `xml:"configuration"`
	Properties []property `xml:"property"`
}

// Configuration is the name/value view of one site file.
type Configuration map[string]string

func Parse(data []byte) (Configuration, error) {
	var c configuration
	dec := xml.NewDecoder(bytes.NewReader(data))
	// hadoop files are sometimes declared as ISO-8859-1
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse site file: %w", err)
	}
	conf := make(Configuration, len(c.Properties))
	for _, p := range c.Properties {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		conf[name] = strings.TrimSpace(p.Value)
	}
	return conf, nil
}

// Endpoints are the connection fields recoverable from a set of site files.
// Anything not present stays blank.
type Endpoints struct {
	HdfsHost       string
	HdfsPort       string
	JobTrackerHost string
	JobTrackerPort string
	ZooKeeperHost  string
	ZooKeeperPort  string
	OozieURL       string
	Kerberos       bool
}

// Extract reads endpoints from files keyed by file name. Files that fail to
// parse are skipped.
func Extract(files map[string][]byte) Endpoints {
	confs := make(map[string]Configuration, len(files))
	for name, data := range files {
		if conf, err := Parse(data); err == nil {
			confs[name] = conf
		}
	}

	var ep Endpoints

	if core, ok := confs[CoreSite]; ok {
		ep.HdfsHost, ep.HdfsPort = splitFsURI(core["fs.defaultFS"])
		if ep.HdfsHost == "" {
			ep.HdfsHost, ep.HdfsPort = splitFsURI(core["fs.default.name"])
		}
		ep.Kerberos = strings.EqualFold(core["hadoop.security.authentication"], "kerberos")
		ep.ZooKeeperHost, ep.ZooKeeperPort = splitQuorum(core["ha.zookeeper.quorum"])
	}

	if yarn, ok := confs[YarnSite]; ok {
		if addr := yarn["yarn.resourcemanager.address"]; addr != "" {
			ep.JobTrackerHost, ep.JobTrackerPort = splitHostPort(addr)
		} else {
			ep.JobTrackerHost = yarn["yarn.resourcemanager.hostname"]
		}
	}

	if hbase, ok := confs[HBaseSite]; ok && hbase["hbase.zookeeper.quorum"] != "" {
		ep.ZooKeeperHost, ep.ZooKeeperPort = splitQuorum(hbase["hbase.zookeeper.quorum"])
		if p := hbase["hbase.zookeeper.property.clientPort"]; p != "" {
			ep.ZooKeeperPort = p
		}
	}

	for _, name := range []string{OozieSite, OozieDefault} {
		if oozie, ok := confs[name]; ok && oozie["oozie.base.url"] != "" {
			ep.OozieURL = oozie["oozie.base.url"]
			break
		}
	}

	return ep
}

func splitFsURI(raw string) (string, string) {
	if raw == "" {
		return "", ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ""
	}
	return u.Hostname(), u.Port()
}

func splitHostPort(raw string) (string, string) {
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return raw, ""
	}
	return host, port
}

// splitQuorum turns "zk1:2181,zk2:2181" into ("zk1,zk2", "2181").
func splitQuorum(raw string) (string, string) {
	if raw == "" {
		return "", ""
	}
	var hosts []string
	port := ""
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		host, p := splitHostPort(entry)
		if port == "" {
			port = p
		}
		hosts = append(hosts, host)
	}
	return strings.Join(hosts, ","), port
}
