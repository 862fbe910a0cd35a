package ldaps

import (
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

func escapeDNComponent(s string) string {
	var builder strings.Builder
	for i, r := range s {
		isSpecial := false
		switch r {
		case '\\', ',', '+', '"', '<', '>', ';', '#', '=':
			isSpecial = true
		}

		if isSpecial || (i == 0 && r == ' ') || (i == len(s)-1 && r == ' ') {
			builder.WriteRune('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// ouDN is the DN of an organizational unit called name directly below baseDN.
func ouDN(name, baseDN string) string {
	return fmt.Sprintf("OU=%s,%s", escapeDNComponent(name), baseDN)
}

func parseDCParts(baseDN string) []string {
	parts := strings.Split(baseDN, ",")
	var dcParts []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(strings.ToLower(p), "dc=") {
			if len(p) > 3 {
				dcParts = append(dcParts, p[3:])
			}
		}
	}
	return dcParts
}

// isBaseDomain reports whether name refers to the whole directory: either its
// DNS name (example.local) or its first label (example).
func isBaseDomain(name, baseDN string) bool {
	dcParts := parseDCParts(baseDN)
	if len(dcParts) == 0 {
		return false
	}
	return strings.EqualFold(name, strings.Join(dcParts, ".")) || strings.EqualFold(name, dcParts[0])
}

// localName returns the value of the first RDN of dn, e.g. "Editors" for
// "CN=Editors,OU=Groups,DC=example,DC=local". Values that do not parse as a
// DN are returned trimmed.
func localName(dn string) string {
	dn = strings.TrimSpace(dn)
	parsed, err := ldap.ParseDN(dn)
	if err != nil || len(parsed.RDNs) == 0 || len(parsed.RDNs[0].Attributes) == 0 {
		return dn
	}
	return parsed.RDNs[0].Attributes[0].Value
}
