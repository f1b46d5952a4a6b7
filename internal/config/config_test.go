package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestNew_Defaults(t *testing.T) {
	inTempDir(t)

	v, err := config.New("")
	require.NoError(t, err)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.False(t, cfg.Auth.ResetAttemptsOnSuccess)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.URLExpiry)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, models.ErrJobNotActive, cfg.Jobs.Eligibility(models.JobStatusActive))
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("JWTKEY_SECRET", "from-env")
	t.Setenv("JWTKEY_TOKENEXPIRYTIMEINHOUR", "2")
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "5")
	t.Setenv("JOBS_ELIGIBILITY", "active-only")

	v, err := config.New("")
	require.NoError(t, err)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "from-env", v.GetString("jwtkey.secret"))
	assert.Equal(t, "2", v.GetString("jwtkey.tokenexpirytimeinhour"))
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.NoError(t, cfg.Jobs.Eligibility(models.JobStatusActive))
}

func TestNew_ConfigFile(t *testing.T) {
	dir := inTempDir(t)
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
database:
  driver: sqlite
  dsn: jobboard.db
jwtkey:
  secret: from-file
  validissuer: jobboard
redis:
  addr: localhost:6379
`), 0o600))

	v, err := config.New("")
	require.NoError(t, err)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "jobboard.db", cfg.Database.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "from-file", v.GetString("jwtkey.secret"))
	assert.Equal(t, "jobboard", v.GetString("jwtkey.validissuer"))
}

func TestNew_DotEnvFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWTKEY_VALIDAUDIENCE=dotenv-audience\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("JWTKEY_VALIDAUDIENCE") })

	v, err := config.New("")
	require.NoError(t, err)

	assert.Equal(t, "dotenv-audience", v.GetString("jwtkey.validaudience"))
}

func TestNew_MissingExplicitFile(t *testing.T) {
	inTempDir(t)

	_, err := config.New("does-not-exist.yaml")

	assert.Error(t, err)
}

func TestFromViper_Rejects(t *testing.T) {
	inTempDir(t)

	t.Run("unknown eligibility policy", func(t *testing.T) {
		t.Setenv("JOBS_ELIGIBILITY", "sometimes")
		v, err := config.New("")
		require.NoError(t, err)

		_, err = config.FromViper(v)
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "oracle")
		v, err := config.New("")
		require.NoError(t, err)

		_, err = config.FromViper(v)
		assert.Error(t, err)
	})
}
