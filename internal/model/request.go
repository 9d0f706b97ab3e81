package model

// Multipart field names used by the cluster forms.
const (
	FormFieldData           = "data"
	FormFieldKeytabAuthFile = "keytabAuthFile"
	FormFieldKeytabImpFile  = "keytabImpFile"
	FormFieldDriver         = "driver"
)

type ClusterNameRequest struct {
	Name string `uri:"name" binding:"required"`
}

type EditClusterQuery struct {
	Overwrite bool `form:"overwrite"`
}

type ValidFileQuery struct {
	Name string `form:"name" binding:"required"`
}
