package ldaps

import (
	"context"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// Ping reports whether the directory accepts the service bind and answers a
// read. Without a bind DN the connection is anonymous, so the root DSE read
// is what proves the server is serving.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := c.dialAndBind(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return readRootDSE(conn)
}

func readRootDSE(conn searcher) error {
	req := ldap.NewSearchRequest(
		"",
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1,
		5,
		false,
		"(objectClass=*)",
		[]string{"namingContexts"},
		nil,
	)
	sr, err := conn.Search(req)
	if err != nil {
		return fmt.Errorf("root DSE read failed: %w", err)
	}
	if len(sr.Entries) == 0 {
		return fmt.Errorf("root DSE read returned no entry")
	}
	return nil
}
