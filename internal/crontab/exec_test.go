package crontab

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xzzpig/schedreg/internal/core/errs"
)

// fakeCrontabScript mimics crontab(1): -l prints the stored table or
// complains that there is none, - installs stdin in one rename.
const fakeCrontabScript = `#!/bin/sh
store="$FAKE_CRONTAB_FILE"
case "$1" in
  -l)
    if [ ! -f "$store" ]; then
      echo "no crontab for tester" >&2
      exit 1
    fi
    cat "$store"
    ;;
  -)
    if [ -n "$FAKE_CRONTAB_DENY" ]; then
      echo "crontab: you are not allowed to use this program" >&2
      exit 1
    fi
    cat > "$store.new" && mv "$store.new" "$store"
    ;;
  *)
    echo "usage: crontab [-l | -]" >&2
    exit 2
    ;;
esac
`

// setupFakeCrontab installs the script and returns its path and store file.
func setupFakeCrontab(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "crontab")
	require.NoError(t, os.WriteFile(bin, []byte(fakeCrontabScript), 0o755))
	store := filepath.Join(dir, "table")
	t.Setenv("FAKE_CRONTAB_FILE", store)
	t.Setenv("FAKE_CRONTAB_DENY", "")
	return bin, store
}

func TestExecCrontab_NoCrontabIsEmpty(t *testing.T) {
	bin, _ := setupFakeCrontab(t)

	lines, err := NewExecCrontab(bin).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestExecCrontab_ReplaceThenList(t *testing.T) {
	bin, store := setupFakeCrontab(t)
	tab := NewExecCrontab(bin)

	want := []string{"MAILTO=\"\"", "*/15 * * * * /usr/bin/python3 /srv/jobs/run.py"}
	require.NoError(t, tab.Replace(context.Background(), want))

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, "MAILTO=\"\"\n*/15 * * * * /usr/bin/python3 /srv/jobs/run.py\n", string(data))

	got, err := tab.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecCrontab_ReplaceDeniedKeepsTable(t *testing.T) {
	bin, store := setupFakeCrontab(t)
	require.NoError(t, os.WriteFile(store, []byte("0 3 * * * /backup\n"), 0o600))
	t.Setenv("FAKE_CRONTAB_DENY", "1")

	err := NewExecCrontab(bin).Replace(context.Background(), []string{"0 3 * * * /backup", "new"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)
	assert.Contains(t, err.Error(), "not allowed")

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, "0 3 * * * /backup\n", string(data))
}

func TestExecCrontab_MissingBinary(t *testing.T) {
	tab := NewExecCrontab(filepath.Join(t.TempDir(), "no-such-crontab"))

	_, err := tab.List(context.Background())
	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)

	err = tab.Replace(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)
}

func TestExecCrontab_ListOtherFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\necho 'cron daemon unreachable' >&2\nexit 1\n"), 0o755))

	_, err := NewExecCrontab(bin).List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)
	assert.Contains(t, err.Error(), "cron daemon unreachable")
}

func TestNewExecCrontab_DefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultBinary, NewExecCrontab("").binary)
}
