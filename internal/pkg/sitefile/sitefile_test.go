package sitefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidConfigurationFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"core-site.xml", true},
		{"yarn-site.xml", true},
		{"custom-site.xml", true},
		{"config.properties", true},
		{"file", false},
		{"oozie-default.xml", false},
		{"core-site.xml.bak", false},
		{"other.properties", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidConfigurationFile(tt.name))
		})
	}
}

func TestIsSiteFile(t *testing.T) {
	assert.True(t, IsSiteFile("hive-site.xml"))
	assert.True(t, IsSiteFile("oozie-default.xml"))
	assert.False(t, IsSiteFile("config.properties"))
	assert.False(t, IsSiteFile("test.keytab"))
}

func TestParse(t *testing.T) {
	conf, err := Parse([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>
<configuration>
  <property><name> fs.defaultFS </name><value>hdfs://nn:8020</value></property>
  <property><name></name><value>ignored</value></property>
</configuration>`))
	require.NoError(t, err)
	assert.Equal(t, Configuration{"fs.defaultFS": "hdfs://nn:8020"}, conf)

	_, err = Parse([]byte("not xml"))
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	files := map[string][]byte{
		CoreSite: []byte(`<configuration>
  <property><name>fs.defaultFS</name><value>hdfs://nn.example.com:8020</value></property>
  <property><name>hadoop.security.authentication</name><value>Kerberos</value></property>
</configuration>`),
		YarnSite: []byte(`<configuration>
  <property><name>yarn.resourcemanager.address</name><value>rm.example.com:8032</value></property>
</configuration>`),
		HBaseSite: []byte(`<configuration>
  <property><name>hbase.zookeeper.quorum</name><value>zk1,zk2</value></property>
  <property><name>hbase.zookeeper.property.clientPort</name><value>2181</value></property>
</configuration>`),
		OozieSite: []byte(`<configuration>
  <property><name>oozie.base.url</name><value>http://oozie:11000/oozie</value></property>
</configuration>`),
	}

	ep := Extract(files)
	assert.Equal(t, Endpoints{
		HdfsHost:       "nn.example.com",
		HdfsPort:       "8020",
		JobTrackerHost: "rm.example.com",
		JobTrackerPort: "8032",
		ZooKeeperHost:  "zk1,zk2",
		ZooKeeperPort:  "2181",
		OozieURL:       "http://oozie:11000/oozie",
		Kerberos:       true,
	}, ep)
}

func TestExtractMissingFieldsStayBlank(t *testing.T) {
	files := map[string][]byte{}
	files[CoreSite] = []byte(`<configuration><property><name>io.file.buffer.size</name><value>1</value></property></configuration>`)
	files[YarnSite] = []byte(`<configuration><property><name>yarn.resourcemanager.hostname</name><value>rm</value></property></configuration>`)
	files["broken-site.xml"] = []byte("<<<")

	ep := Extract(files)
	assert.Empty(t, ep.HdfsHost)
	assert.Empty(t, ep.HdfsPort)
	assert.Equal(t, "rm", ep.JobTrackerHost)
	assert.Empty(t, ep.JobTrackerPort)
	assert.False(t, ep.Kerberos)
}

func TestSplitQuorum(t *testing.T) {
	hosts, port := splitQuorum("zk1:2181, zk2:2181,,zk3:2181")
	assert.Equal(t, "zk1,zk2,zk3", hosts)
	assert.Equal(t, "2181", port)

	hosts, port = splitQuorum("")
	assert.Empty(t, hosts)
	assert.Empty(t, port)
}

func TestSplitFsURI(t *testing.T) {
	host, port := splitFsURI("hdfs://nameservice1")
	assert.Equal(t, "nameservice1", host)
	assert.Empty(t, port)

	host, port = splitFsURI("file:///")
	assert.Empty(t, host)
	assert.Empty(t, port)
}
