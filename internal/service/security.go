package service

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"hadoop-cluster-backend/internal/model"
	"hadoop-cluster-backend/internal/pkg/encr"
)

const authPrefix = "pentaho.authentication.default."

const (
	KeyKerberosPrincipal      = authPrefix + "kerberos.principal"
	KeyKerberosPassword       = authPrefix + "kerberos.password"
	KeyKerberosKeytabLocation = authPrefix + "kerberos.keytabLocation"
	KeyImpersonationPrincipal = authPrefix + "mapping.server.credentials.kerberos.principal"
	KeyImpersonationPassword  = authPrefix + "mapping.server.credentials.kerberos.password"
	KeyImpersonationKeytab    = authPrefix + "mapping.server.credentials.kerberos.keytabLocation"
	KeyImpersonationType      = authPrefix + "mapping.impersonation.type"
)

const (
	ImpersonationDisabled = "disabled"
	ImpersonationSimple   = "simple"
)

var securityKeys = []string{
	KeyKerberosPrincipal,
	KeyKerberosPassword,
	KeyKerberosKeytabLocation,
	KeyImpersonationPrincipal,
	KeyImpersonationPassword,
	KeyImpersonationKeytab,
	KeyImpersonationType,
}

var keytabKeys = []string{KeyKerberosKeytabLocation, KeyImpersonationKeytab}

// keytabLocations are the paths of keytabs uploaded with this request.
type keytabLocations struct {
	auth string
	imp  string
}

func securityType(m *model.ClusterModel) string {
	switch {
	case strings.EqualFold(m.SecurityType, model.SecurityKerberos):
		return model.SecurityKerberos
	case strings.EqualFold(m.SecurityType, model.SecurityKnox):
		return model.SecurityKnox
	default:
		return model.SecurityNone
	}
}

func kerberosSubType(m *model.ClusterModel) string {
	if strings.EqualFold(m.KerberosSubType, model.KerberosKeytab) {
		return model.KerberosKeytab
	}
	return model.KerberosPassword
}

// applySecurity writes every security key. Anything but Kerberos resets all
// Kerberos values and disables impersonation. A keytab sub type keeps the
// previous keytab location when no new keytab was uploaded. It returns the
// keytab locations that are no longer referenced.
func applySecurity(p *properties.Properties, m *model.ClusterModel, keytabs keytabLocations, enc encr.Encoder) ([]string, error) {
	previous := make(map[string]string, len(keytabKeys))
	for _, k := range keytabKeys {
		previous[k] = p.GetString(k, "")
	}

	values := make(map[string]string, len(securityKeys))
	for _, k := range securityKeys {
		values[k] = ""
	}
	values[KeyImpersonationType] = ImpersonationDisabled

	if securityType(m) == model.SecurityKerberos {
		values[KeyImpersonationType] = ImpersonationSimple
		values[KeyKerberosPrincipal] = m.KerberosAuthenticationUsername
		values[KeyImpersonationPrincipal] = m.KerberosImpersonationUsername

		switch kerberosSubType(m) {
		case model.KerberosKeytab:
			values[KeyKerberosKeytabLocation] = firstNonEmpty(keytabs.auth, previous[KeyKerberosKeytabLocation])
			values[KeyImpersonationKeytab] = firstNonEmpty(keytabs.imp, previous[KeyImpersonationKeytab])
		default:
			pw, err := enc.Encrypt(m.KerberosAuthenticationPassword)
			if err != nil {
				return nil, fmt.Errorf("encrypt kerberos password: %w", err)
			}
			values[KeyKerberosPassword] = pw
			impPw, err := enc.Encrypt(m.KerberosImpersonationPassword)
			if err != nil {
				return nil, fmt.Errorf("encrypt impersonation password: %w", err)
			}
			values[KeyImpersonationPassword] = impPw
		}
	}

	for _, k := range securityKeys {
		if _, _, err := p.Set(k, values[k]); err != nil {
			return nil, fmt.Errorf("set %s: %w", k, err)
		}
	}

	var stale []string
	for _, k := range keytabKeys {
		old := previous[k]
		if old != "" && old != values[KeyKerberosKeytabLocation] && old != values[KeyImpersonationKeytab] {
			stale = append(stale, old)
		}
	}
	return stale, nil
}

// readSecurity fills the security fields of m from config.properties.
// Impersonation type "simple" is only ever written for Kerberos.
func readSecurity(p *properties.Properties, m *model.ClusterModel, enc encr.Encoder) error {
	if p.GetString(KeyImpersonationType, "") != ImpersonationSimple {
		m.SecurityType = model.SecurityNone
		return nil
	}

	m.SecurityType = model.SecurityKerberos
	m.KerberosAuthenticationUsername = p.GetString(KeyKerberosPrincipal, "")
	m.KerberosImpersonationUsername = p.GetString(KeyImpersonationPrincipal, "")

	authKeytab := p.GetString(KeyKerberosKeytabLocation, "")
	impKeytab := p.GetString(KeyImpersonationKeytab, "")
	if authKeytab != "" || impKeytab != "" {
		m.KerberosSubType = model.KerberosKeytab
		m.KeytabAuthFile = baseName(authKeytab)
		m.KeytabImpFile = baseName(impKeytab)
		return nil
	}

	m.KerberosSubType = model.KerberosPassword
	var err error
	if m.KerberosAuthenticationPassword, err = enc.Decrypt(p.GetString(KeyKerberosPassword, "")); err != nil {
		return fmt.Errorf("decrypt kerberos password: %w", err)
	}
	if m.KerberosImpersonationPassword, err = enc.Decrypt(p.GetString(KeyImpersonationPassword, "")); err != nil {
		return fmt.Errorf("decrypt impersonation password: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
