package export

// UserRecord is one exported account, flattened for the report.
type UserRecord struct {
	Name            string
	Email           string
	Login           string
	DomainName      string
	Description     string
	State           string
	IsAdministrator bool
	Roles           []string
}

// NewUserRecord copies the attributes of id into a UserRecord. Roles keep the
// identity's iteration order and are not deduplicated.
func NewUserRecord(id Identity) UserRecord {
	roles := id.Roles()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.LocalName())
	}
	return UserRecord{
		Name:            id.DisplayName(),
		Email:           id.Email(),
		Login:           id.LocalName(),
		DomainName:      id.DomainName(),
		Description:     id.Description(),
		State:           id.State(),
		IsAdministrator: id.IsAdministrator(),
		Roles:           names,
	}
}
