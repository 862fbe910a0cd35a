package config

import (
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Report store backends.
const (
	StoreFile = "file"
	StoreS3   = "s3"
)

type Config struct {
	BindAddr     string // HTTP bind address, e.g. :8080
	LdapAddr     string // host:port, e.g. dc.example.local:636
	BaseDN       string
	BindDN       string
	BindPassword string
	SkipVerify   bool
	CACertPath   string // optional path to CA PEM to verify LDAPS certs
	PageSize     uint32
	AdminGroups  []string // role names that mark an account as administrator

	PartitionMapFile string // optional YAML file mapping domain names to DNs

	ReportsDir  string
	ReportStore string // "file" or "s3"
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string // optional, for S3-compatible services
}

// LoadFromEnv reads configuration from the environment. Values from a .env
// file in the working directory (or DOTENV_FILE) are applied first without
// overriding variables that are already set.
func LoadFromEnv() (*Config, error) {
	if err := loadDotEnv(getenv("DOTENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		BindAddr:         getenv("BIND_ADDR", ":8080"),
		LdapAddr:         getenv("LDAP_ADDR", "dc.example.local:636"),
		BaseDN:           getenv("LDAP_BASE_DN", "dc=example,dc=local"),
		BindDN:           os.Getenv("LDAP_BIND_DN"),
		BindPassword:     os.Getenv("LDAP_BIND_PASSWORD"),
		CACertPath:       os.Getenv("LDAP_CA_CERT"),
		AdminGroups:      listFromEnv("LDAP_ADMIN_GROUPS", []string{"Domain Admins", "Enterprise Admins", "Administrators"}),
		PartitionMapFile: os.Getenv("PARTITION_MAP_FILE"),
		ReportsDir:       getenv("REPORTS_DIR", "data/reports"),
		ReportStore:      strings.ToLower(getenv("REPORT_STORE", StoreFile)),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Prefix:         getenv("S3_PREFIX", "reports"),
		S3Region:         getenv("S3_REGION", "us-east-1"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
	}
	cfg.SkipVerify = boolFromEnv("LDAP_SKIP_VERIFY", false)

	pageSize, err := uintFromEnv("LDAP_PAGE_SIZE", 500)
	if err != nil {
		return nil, err
	}
	cfg.PageSize = pageSize

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and their combinations.
func (c *Config) Validate() error {
	if c.BaseDN == "" {
		return fmt.Errorf("LDAP_BASE_DN must be set")
	}
	if c.PageSize == 0 {
		return fmt.Errorf("LDAP_PAGE_SIZE must be positive")
	}
	switch c.ReportStore {
	case StoreFile:
		if c.ReportsDir == "" {
			return fmt.Errorf("REPORTS_DIR must be set")
		}
	case StoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set when REPORT_STORE=s3")
		}
	default:
		return fmt.Errorf("unknown REPORT_STORE %q", c.ReportStore)
	}
	return nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func boolFromEnv(key string, def bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}
	trimmed := strings.Trim(val, "\"'")
	b, err := strconv.ParseBool(trimmed)
	if err != nil {
		return def
	}
	return b
}

func uintFromEnv(key string, def uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return uint32(n), nil
}

func listFromEnv(key string, def []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

// helper to load CA pool — callers can use this to build tls.Config
func LoadCAPool(caPath string) (*x509.CertPool, error) {
	if caPath == "" {
		return nil, nil
	}
	pemData, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(pemData); !ok {
		return nil, fmt.Errorf("failed to parse CA certificate(s) from %s", caPath)
	}
	return pool, nil
}
