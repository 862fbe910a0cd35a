package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BIND_ADDR", "LDAP_ADDR", "LDAP_BASE_DN", "LDAP_PAGE_SIZE", "LDAP_ADMIN_GROUPS",
		"REPORTS_DIR", "REPORT_STORE", "S3_BUCKET", "LDAP_SKIP_VERIFY",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("DOTENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		is := is.New(t)
		clearEnv(t)

		cfg, err := LoadFromEnv()
		is.NoErr(err)
		is.Equal(cfg.BindAddr, ":8080")
		is.Equal(cfg.PageSize, uint32(500))
		is.Equal(cfg.ReportsDir, "data/reports")
		is.Equal(cfg.ReportStore, StoreFile)
		is.Equal(cfg.AdminGroups, []string{"Domain Admins", "Enterprise Admins", "Administrators"})
		is.True(!cfg.SkipVerify)
	})

	t.Run("overrides", func(t *testing.T) {
		is := is.New(t)
		clearEnv(t)
		t.Setenv("LDAP_PAGE_SIZE", "100")
		t.Setenv("LDAP_ADMIN_GROUPS", " Admins , ,Root ")
		t.Setenv("LDAP_SKIP_VERIFY", "\"true\"")
		t.Setenv("REPORTS_DIR", "/srv/reports")

		cfg, err := LoadFromEnv()
		is.NoErr(err)
		is.Equal(cfg.PageSize, uint32(100))
		is.Equal(cfg.AdminGroups, []string{"Admins", "Root"})
		is.True(cfg.SkipVerify)
		is.Equal(cfg.ReportsDir, "/srv/reports")
	})

	t.Run("dotenv file fills unset values", func(t *testing.T) {
		is := is.New(t)
		clearEnv(t)
		os.Unsetenv("REPORTS_DIR")
		path := filepath.Join(t.TempDir(), "test.env")
		is.NoErr(os.WriteFile(path, []byte("REPORTS_DIR=/from/dotenv\n"), 0o600))
		t.Setenv("DOTENV_FILE", path)

		cfg, err := LoadFromEnv()
		is.NoErr(err)
		is.Equal(cfg.ReportsDir, "/from/dotenv")
	})

	t.Run("invalid page size", func(t *testing.T) {
		is := is.New(t)
		clearEnv(t)
		t.Setenv("LDAP_PAGE_SIZE", "lots")

		_, err := LoadFromEnv()
		is.True(err != nil)
	})

	t.Run("s3 store needs a bucket", func(t *testing.T) {
		is := is.New(t)
		clearEnv(t)
		t.Setenv("REPORT_STORE", "S3")

		_, err := LoadFromEnv()
		is.True(err != nil)

		t.Setenv("S3_BUCKET", "reports")
		cfg, err := LoadFromEnv()
		is.NoErr(err)
		is.Equal(cfg.ReportStore, StoreS3)
	})

	t.Run("unknown store", func(t *testing.T) {
		is := is.New(t)
		clearEnv(t)
		t.Setenv("REPORT_STORE", "ftp")

		_, err := LoadFromEnv()
		is.True(err != nil)
	})
}
