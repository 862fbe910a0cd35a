package export_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lugatuic/domainreport/export"
)

type fakeRole string

func (r fakeRole) LocalName() string { return string(r) }

type fakeIdentity struct {
	name, email, login, domain, description, state string
	admin                                          bool
	roles                                          []string
}

func (f fakeIdentity) DisplayName() string   { return f.name }
func (f fakeIdentity) Email() string         { return f.email }
func (f fakeIdentity) LocalName() string     { return f.login }
func (f fakeIdentity) DomainName() string    { return f.domain }
func (f fakeIdentity) Description() string   { return f.description }
func (f fakeIdentity) State() string         { return f.state }
func (f fakeIdentity) IsAdministrator() bool { return f.admin }
func (f fakeIdentity) Roles() []export.Role {
	out := make([]export.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, fakeRole(r))
	}
	return out
}

type fakePartition struct {
	name    string
	members []export.Identity
	err     error
	calls   int
}

func (p *fakePartition) Name() string { return p.name }

func (p *fakePartition) Members(ctx context.Context) ([]export.Identity, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.members, nil
}

type fakeResolver struct {
	partitions map[string]*fakePartition
	err        error
}

func (r *fakeResolver) ResolvePartition(ctx context.Context, name string) (export.Partition, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.partitions[name]
	if !ok {
		return nil, export.ErrPartitionNotFound
	}
	return p, nil
}

type fakeStore struct {
	err    error
	stored map[string][]byte
}

func (s *fakeStore) Store(ctx context.Context, data []byte, filename string) (export.Reference, error) {
	if s.err != nil {
		return export.Reference{}, s.err
	}
	if s.stored == nil {
		s.stored = map[string][]byte{}
	}
	s.stored[filename] = data
	return export.Reference{Filename: filename, Location: "mem://" + filename}, nil
}

var errBoom = errors.New("boom")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func extranetUsers() []export.Identity {
	return []export.Identity{
		fakeIdentity{login: "jdoe", name: "Jane Doe", email: "jane@x.com", domain: "extranet", roles: []string{"Editor", "Author"}},
		fakeIdentity{login: "admin", name: "Admin", domain: "extranet", admin: true},
	}
}

// manyRoles returns n distinct role names of the form "Role-0001-members".
func manyRoles(n int) []string {
	roles := make([]string, n)
	for i := range roles {
		roles[i] = fmt.Sprintf("Role-%04d-members", i)
	}
	return roles
}
