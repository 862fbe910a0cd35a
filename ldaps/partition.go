package ldaps

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/lugatuic/domainreport/export"
)

// ResolvePartition maps a domain name to a directory subtree. A name is
// looked up in the partition map first; otherwise it matches the whole base
// DN (by DNS name or first label) or an organizational unit directly below
// it. Unknown names yield export.ErrPartitionNotFound.
func (c *Client) ResolvePartition(ctx context.Context, name string) (export.Partition, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	conn, err := c.dialAndBind(ctxTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	dn, err := c.findPartition(conn, name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("partition.resolved", zap.String("domain", name), zap.String("dn", dn))
	return &Partition{client: c, name: name, dn: dn}, nil
}

func (c *Client) candidateDNs(name string) []string {
	if dn, ok := c.partitions.Lookup(name); ok {
		return []string{dn}
	}
	var dns []string
	if isBaseDomain(name, c.cfg.BaseDN) {
		dns = append(dns, c.cfg.BaseDN)
	}
	return append(dns, ouDN(name, c.cfg.BaseDN))
}

func (c *Client) findPartition(conn searcher, name string) (string, error) {
	for _, dn := range c.candidateDNs(name) {
		ok, err := entryExists(conn, dn)
		if err != nil {
			c.logger.Error("ldap partition lookup failed", zap.Error(err), zap.String("dn", dn))
			return "", fmt.Errorf("ldap partition lookup failed: %w", err)
		}
		if ok {
			return dn, nil
		}
	}
	return "", export.ErrPartitionNotFound
}

func entryExists(conn searcher, dn string) (bool, error) {
	req := ldap.NewSearchRequest(
		dn,
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1,
		10,
		false,
		"(objectClass=*)",
		[]string{"distinguishedName"},
		nil,
	)
	sr, err := conn.Search(req)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) || ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidDNSyntax) {
			return false, nil
		}
		return false, err
	}
	return len(sr.Entries) > 0, nil
}
