package ldaps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/lugatuic/domainreport/export"
)

const userFilter = "(&(objectCategory=person)(objectClass=user))"

// accountDisabled is the ACCOUNTDISABLE flag of userAccountControl.
const accountDisabled = 0x2

var memberAttributes = []string{
	"distinguishedName",
	"cn",
	"displayName",
	"mail",
	"sAMAccountName",
	"uid",
	"description",
	"userAccountControl",
	"memberOf",
}

// Members returns every user account below p, in the order the server
// returns them.
func (c *Client) Members(ctx context.Context, p *Partition) ([]export.Identity, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	conn, err := c.dialAndBind(ctxTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return c.searchMembers(conn, p)
}

func (c *Client) searchMembers(conn searcher, p *Partition) ([]export.Identity, error) {
	searchReq := ldap.NewSearchRequest(
		p.dn,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		userFilter,
		memberAttributes,
		nil,
	)

	sr, err := conn.SearchWithPaging(searchReq, c.cfg.PageSize)
	if err != nil {
		c.logger.Error("ldap search failed", zap.Error(err), zap.String("filter", userFilter), zap.String("dn", p.dn))
		return nil, fmt.Errorf("ldap search failed: %w", err)
	}

	members := make([]export.Identity, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		members = append(members, c.memberFromEntry(entry, p.name))
	}
	return members, nil
}

func (c *Client) memberFromEntry(entry *ldap.Entry, domain string) *Member {
	m := &Member{
		DN:             entry.DN,
		Display:        firstNonEmpty(entry.GetAttributeValue("displayName"), entry.GetAttributeValue("cn")),
		Mail:           entry.GetAttributeValue("mail"),
		SAMAccountName: firstNonEmpty(entry.GetAttributeValue("sAMAccountName"), entry.GetAttributeValue("uid")),
		Domain:         domain,
		Desc:           entry.GetAttributeValue("description"),
		AccountState:   accountState(entry.GetAttributeValue("userAccountControl")),
	}

	groups := entry.GetAttributeValues("memberOf")
	if len(groups) > 0 {
		m.MemberOf = make([]string, 0, len(groups))
		for _, g := range groups {
			name := localName(g)
			m.MemberOf = append(m.MemberOf, name)
			if _, ok := c.adminGroups[strings.ToLower(name)]; ok {
				m.Admin = true
			}
		}
	}
	return m
}

func accountState(uac string) string {
	if uac == "" {
		return ""
	}
	flags, err := strconv.ParseInt(strings.TrimSpace(uac), 10, 64)
	if err != nil {
		return ""
	}
	if flags&accountDisabled != 0 {
		return StateDisabled
	}
	return StateEnabled
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
