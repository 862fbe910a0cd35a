package ldaps

import (
	"context"

	"github.com/lugatuic/domainreport/export"
)

// Account states derived from userAccountControl.
const (
	StateEnabled  = "Enabled"
	StateDisabled = "Disabled"
)

// Member is a user entry read from a partition. It implements export.Identity.
type Member struct {
	DN             string
	Display        string
	Mail           string
	SAMAccountName string
	Domain         string
	Desc           string
	AccountState   string
	Admin          bool
	MemberOf       []string // group local names, in directory order
}

func (m *Member) DisplayName() string   { return m.Display }
func (m *Member) Email() string         { return m.Mail }
func (m *Member) LocalName() string     { return m.SAMAccountName }
func (m *Member) DomainName() string    { return m.Domain }
func (m *Member) Description() string   { return m.Desc }
func (m *Member) State() string         { return m.AccountState }
func (m *Member) IsAdministrator() bool { return m.Admin }

func (m *Member) Roles() []export.Role {
	roles := make([]export.Role, 0, len(m.MemberOf))
	for _, g := range m.MemberOf {
		roles = append(roles, groupRole(g))
	}
	return roles
}

type groupRole string

func (g groupRole) LocalName() string { return string(g) }

// Partition is a resolved subtree of the directory.
type Partition struct {
	client *Client
	name   string
	dn     string
}

func (p *Partition) Name() string { return p.name }

// DN is the search base of the partition.
func (p *Partition) DN() string { return p.dn }

// Members lists every user account below the partition's DN.
func (p *Partition) Members(ctx context.Context) ([]export.Identity, error) {
	return p.client.Members(ctx, p)
}

var (
	_ export.Identity  = (*Member)(nil)
	_ export.Partition = (*Partition)(nil)
	_ export.Resolver  = (*Client)(nil)
)
