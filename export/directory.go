package export

import (
	"context"
	"errors"
)

// ErrPartitionNotFound is returned by a Resolver when the requested name does
// not map to a partition.
var ErrPartitionNotFound = errors.New("partition not found")

// Role is a group membership held by an identity.
type Role interface {
	LocalName() string
}

// Identity is the read-only view of a directory account used by the export.
type Identity interface {
	DisplayName() string
	Email() string
	LocalName() string
	DomainName() string
	Description() string
	State() string
	IsAdministrator() bool
	Roles() []Role
}

// Partition is a resolved, named namespace of identities.
type Partition interface {
	Name() string
	Members(ctx context.Context) ([]Identity, error)
}

// Resolver maps a partition name to a Partition.
type Resolver interface {
	ResolvePartition(ctx context.Context, name string) (Partition, error)
}
