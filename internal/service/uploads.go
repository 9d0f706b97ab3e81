package service

import (
	"fmt"
	"sort"

	"github.com/magiconair/properties"

	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/clusterfs"
	"hadoop-cluster-backend/internal/pkg/sitefile"
	"hadoop-cluster-backend/pkg/utils"
)

// uploadSet is the uploaded files of one request sorted by role.
type uploadSet struct {
	siteFiles  []*model.UploadedFile
	properties *properties.Properties
	keytabAuth *model.UploadedFile
	keytabImp  *model.UploadedFile
}

// classifyUploads sorts files by form field: the two keytab fields hold
// keytabs, everything else must be a valid configuration file.
func classifyUploads(files map[string]*model.UploadedFile) (*uploadSet, error) {
	set := &uploadSet{}

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		f := files[key]
		if f == nil {
			continue
		}
		name := utils.SanitizeFileName(f.FileName)
		if name == "" {
			return nil, fmt.Errorf("uploaded file of field %q has no name", key)
		}
		field := f.FieldName
		if field == "" {
			field = key
		}
		upload := &model.UploadedFile{FieldName: field, FileName: name, Content: f.Content}

		switch {
		case field == model.FormFieldKeytabAuthFile || field == model.FormFieldKeytabImpFile:
			if name == clusterfs.PropertiesFile || sitefile.IsSiteFile(name) {
				return nil, fmt.Errorf("keytab must not be named %q", name)
			}
			if field == model.FormFieldKeytabAuthFile {
				set.keytabAuth = upload
			} else {
				set.keytabImp = upload
			}
		case name == clusterfs.PropertiesFile:
			p, err := clusterfs.ParseProperties(upload.Content)
			if err != nil {
				return nil, fmt.Errorf("parse uploaded %s: %w", name, err)
			}
			set.properties = p
		case sitefile.IsSiteFile(name):
			set.siteFiles = append(set.siteFiles, upload)
		default:
			return nil, fmt.Errorf("unsupported configuration file %q", name)
		}
	}
	return set, nil
}

func (u *uploadSet) siteContents() map[string][]byte {
	out := make(map[string][]byte, len(u.siteFiles))
	for _, f := range u.siteFiles {
		out[f.FileName] = f.Content
	}
	return out
}
