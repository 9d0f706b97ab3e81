package model

// ClusterResult is the outcome of a create, edit or import. On failure
// NamedCluster is empty and Reason says why.
type ClusterResult struct {
	NamedCluster string `json:"namedCluster"`
	Reason       string `json:"reason,omitempty"`
}

func Succeeded(name string) ClusterResult {
	return ClusterResult{NamedCluster: name}
}

func Failed(reason string) ClusterResult {
	return ClusterResult{Reason: reason}
}

func (r ClusterResult) OK() bool {
	return r.NamedCluster != ""
}

type InstallResult struct {
	Installed bool   `json:"installed"`
	Message   string `json:"message,omitempty"`
}

type ValidFileResponse struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
