package model

// Security types accepted from the UI.
const (
	SecurityNone     = "None"
	SecurityKerberos = "Kerberos"
	SecurityKnox     = "Knox"
)

// Kerberos sub types.
const (
	KerberosPassword = "Password"
	KerberosKeytab   = "Keytab"
)

// ClusterModel is the flat cluster form exchanged with the UI.
type ClusterModel struct {
	Name                  string `json:"name"`
	OldName               string `json:"oldName,omitempty"`
	ShimVendor            string `json:"shimVendor"`
	ShimVersion           string `json:"shimVersion"`
	HdfsHost              string `json:"hdfsHost"`
	HdfsPort              string `json:"hdfsPort"`
	HdfsUsername          string `json:"hdfsUsername"`
	HdfsPassword          string `json:"hdfsPassword"`
	JobTrackerHost        string `json:"jobTrackerHost"`
	JobTrackerPort        string `json:"jobTrackerPort"`
	ZooKeeperHost         string `json:"zooKeeperHost"`
	ZooKeeperPort         string `json:"zooKeeperPort"`
	OozieURL              string `json:"oozieUrl"`
	KafkaBootstrapServers string `json:"kafkaBootstrapServers"`

	SecurityType                   string `json:"securityType"`
	KerberosSubType                string `json:"kerberosSubType"`
	KerberosAuthenticationUsername string `json:"kerberosAuthenticationUsername"`
	KerberosAuthenticationPassword string `json:"kerberosAuthenticationPassword"`
	KerberosImpersonationUsername  string `json:"kerberosImpersonationUsername"`
	KerberosImpersonationPassword  string `json:"kerberosImpersonationPassword"`
	KeytabAuthFile                 string `json:"keytabAuthFile"`
	KeytabImpFile                  string `json:"keytabImpFile"`

	GatewayURL      string `json:"gatewayUrl"`
	GatewayUsername string `json:"gatewayUsername"`
	GatewayPassword string `json:"gatewayPassword"`

	SiteFiles []string `json:"siteFiles"`
}

// ShimIdentifier describes a supported big-data distribution.
type ShimIdentifier struct {
	ID      string `json:"id" yaml:"id"`
	Vendor  string `json:"vendor" yaml:"vendor"`
	Version string `json:"version" yaml:"version"`
}

// UploadedFile is one multipart file buffered in memory.
type UploadedFile struct {
	FieldName string
	FileName  string
	Content   []byte
}
