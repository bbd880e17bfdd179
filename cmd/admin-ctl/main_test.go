package main

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nftheater/admin-api/internal/domain/model"
)

func TestParseCreateAdminFlags(t *testing.T) {
	opts, err := parseCreateAdminFlags([]string{
		"--uid", "uid-1",
		"--email", "ops@nftheater.test",
		"--name", "Ops Admin",
		"--role", "operation",
		"--privileges", "netflix, youtube",
	})
	require.NoError(t, err)
	require.Equal(t, "uid-1", opts.UID)
	require.Equal(t, "OPERATION", opts.Role)
	require.Equal(t, []string{"NETFLIX", "YOUTUBE"}, opts.Privileges)
}

func TestParseCreateAdminFlagsRejectsUnknownRole(t *testing.T) {
	_, err := parseCreateAdminFlags([]string{
		"--uid", "uid-1",
		"--email", "ops@nftheater.test",
		"--name", "Ops Admin",
		"--role", "INTERN",
	})
	require.ErrorContains(t, err, "unknown role")
}

func TestParseListAdminsFlagsRejectsConflictingFilters(t *testing.T) {
	_, err := parseListAdminsFlags([]string{"--active", "--inactive"})
	require.ErrorContains(t, err, "mutually exclusive")
}

func TestParseClearSessionsFlagsRequiresTarget(t *testing.T) {
	_, err := parseClearSessionsFlags(nil)
	require.ErrorContains(t, err, "--uid")

	_, err = parseClearSessionsFlags([]string{"--uid", "uid-1", "--all"})
	require.ErrorContains(t, err, "mutually exclusive")

	opts, err := parseClearSessionsFlags([]string{"--all", "--dry-run"})
	require.NoError(t, err)
	require.True(t, opts.All)
	require.True(t, opts.DryRun)
}

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"db.internal.local", false},
		{"10.1.2.3", true},
		{"db.prod.nftheater.example", true},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, isLikelyRemoteHost(tt.host), "host %q", tt.host)
	}
}

func TestPrintAdminTableListsRows(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
	}()

	os.Stdout = w

	admins := []*model.AdminUser{
		{
			UID:        "uid-1",
			Email:      "ops@nftheater.test",
			AdminName:  "Ops Admin",
			Role:       "OPERATION",
			Privileges: []string{"NETFLIX"},
			IsActive:   true,
			CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	err = printAdminTable(os.Stdout, admins)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	outStr := string(output)
	require.Contains(t, outStr, "ops@nftheater.test")
	require.Contains(t, outStr, "OPERATION")
	require.Contains(t, outStr, "1 administrator(s)")
}
