package ldaps

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/lugatuic/domainreport/config"
	"github.com/lugatuic/domainreport/partitions"
)

// Client holds configuration and TLS settings for LDAPS connections.
// Each operation dials and binds its own connection and closes it afterwards.
type Client struct {
	cfg         *config.Config
	tlsConfig   *tls.Config
	logger      *zap.Logger
	partitions  partitions.Map
	adminGroups map[string]struct{}
}

// NewClient prepares a Client and TLS settings (but does not connect yet).
func NewClient(cfg *config.Config, logger *zap.Logger, pm partitions.Map) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		cfg:         cfg,
		logger:      logger,
		partitions:  pm,
		adminGroups: make(map[string]struct{}, len(cfg.AdminGroups)),
	}
	for _, g := range cfg.AdminGroups {
		c.adminGroups[strings.ToLower(g)] = struct{}{}
	}

	tlsCfg := &tls.Config{
		InsecureSkipVerify: cfg.SkipVerify,
		MinVersion:         tls.VersionTLS12,
	}

	if cfg.CACertPath != "" {
		pool, err := config.LoadCAPool(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("load CA pool: %w", err)
		}
		if pool != nil {
			tlsCfg.RootCAs = pool
		}
	}

	c.tlsConfig = tlsCfg
	return c, nil
}

func (c *Client) dialAndBind(ctx context.Context) (*ldap.Conn, error) {
	ldapsURL := fmt.Sprintf("ldaps://%s", c.cfg.LdapAddr)
	dialer := &net.Dialer{}
	conn, err := ldap.DialURL(ldapsURL, ldap.DialWithDialer(dialer), ldap.DialWithTLSConfig(c.tlsConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to dial LDAPS %s: %w", ldapsURL, err)
	}

	if dl, ok := ctx.Deadline(); ok {
		conn.SetTimeout(time.Until(dl))
	} else {
		conn.SetTimeout(10 * time.Second)
	}

	if c.cfg.BindDN != "" {
		if bindErr := conn.Bind(c.cfg.BindDN, c.cfg.BindPassword); bindErr != nil {
			conn.Close()
			return nil, fmt.Errorf("service bind failed: %w", bindErr)
		}
	}
	return conn, nil
}

// searcher is the subset of *ldap.Conn used for reads.
type searcher interface {
	Search(*ldap.SearchRequest) (*ldap.SearchResult, error)
	SearchWithPaging(*ldap.SearchRequest, uint32) (*ldap.SearchResult, error)
}
