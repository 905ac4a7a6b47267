package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("OTP_STORE", "")
	t.Setenv("EMAIL_USERNAME", "shop@example.com")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	env := LoadEnv()

	assert.Equal(t, ":5000", env.Port)
	assert.Equal(t, "mysql", env.DBDriver)
	assert.Equal(t, "memory", env.OTPStore)
	assert.Equal(t, "shop@example.com", env.EmailFrom)
	assert.Equal(t, 25, env.DBMaxOpenConns)
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(ENV{DBDriver: driver, DBHost: "localhost", DBName: "shop"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(ENV{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDialectorReportsFoundRows(t *testing.T) {
	d, err := Dialector(ENV{DBDriver: "mysql", DBHost: "localhost", DBUser: "shop", DBName: "shop"})
	require.NoError(t, err)

	my, ok := d.(*mysql.Dialector)
	require.True(t, ok)
	assert.Contains(t, my.DSN, "clientFoundRows=true")
	assert.Contains(t, my.DSN, "parseTime=true")
}
