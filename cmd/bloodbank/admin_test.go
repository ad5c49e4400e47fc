package main

import (
	"testing"

	"blood_bank_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAccount_FlagsOverrideConfig(t *testing.T) {
	cfg := &config.Config{AdminEmail: "admin@example.com", AdminName: "Admin", AdminPassword: "fromenv"}

	account, generated, err := adminAccount(cfg, "Boss@Example.com", "", "")
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, "Boss@Example.com", account.Email)
	assert.Equal(t, "Admin", account.Name)
	assert.Equal(t, "fromenv", account.Password)
}

func TestAdminAccount_GeneratesPassword(t *testing.T) {
	account, generated, err := adminAccount(&config.Config{AdminEmail: "admin@example.com"}, "", "", "  ")
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, account.Password, 16)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "create-admin", "make-admin"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	makeAdmin, _, err := root.Find([]string{"make-admin"})
	require.NoError(t, err)
	assert.Error(t, makeAdmin.Args(makeAdmin, nil))
	assert.NoError(t, makeAdmin.Args(makeAdmin, []string{"a@example.com"}))
}
