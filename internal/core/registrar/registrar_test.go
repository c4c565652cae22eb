package registrar_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xzzpig/schedreg/internal/core/errs"
	"github.com/xzzpig/schedreg/internal/core/registrar"
	"github.com/xzzpig/schedreg/internal/crontab/crontabtest"
	"github.com/xzzpig/schedreg/internal/i18n"
)

// MockCrontab is a mock for the Crontab port.
type MockCrontab struct {
	mock.Mock
}

func (m *MockCrontab) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	lines, _ := args.Get(0).([]string)
	return lines, args.Error(1)
}

func (m *MockCrontab) Replace(ctx context.Context, lines []string) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

var pythonJob = registrar.Entry{
	Cadence:     registrar.DefaultCadence,
	Interpreter: "/usr/bin/python3",
	Script:      "/srv/jobs/run.py",
}

const pythonLine = "*/15 * * * * /usr/bin/python3 /srv/jobs/run.py"

func TestInstall_EmptySchedule(t *testing.T) {
	tab := crontabtest.New()
	r := registrar.New(tab)

	require.NoError(t, r.Install(context.Background(), pythonJob))
	assert.Equal(t, []string{pythonLine}, tab.Lines())
}

func TestInstall_AppendsAfterExistingEntries(t *testing.T) {
	existing := []string{
		"# m h dom mon dow command",
		"0 3 * * * /usr/local/bin/backup",
		"",
		"MAILTO=ops@example.com",
	}
	tab := crontabtest.New(existing...)
	r := registrar.New(tab)

	require.NoError(t, r.Install(context.Background(), pythonJob))

	got := tab.Lines()
	require.Len(t, got, len(existing)+1)
	assert.Equal(t, existing, got[:len(existing)])
	assert.Equal(t, pythonLine, got[len(existing)])
}

func TestInstall_TwiceDuplicates(t *testing.T) {
	tab := crontabtest.New()
	r := registrar.New(tab)

	require.NoError(t, r.Install(context.Background(), pythonJob))
	require.NoError(t, r.Install(context.Background(), pythonJob))

	assert.Equal(t, []string{pythonLine, pythonLine}, tab.Lines())
}

func TestInstall_ListFailureNeverWrites(t *testing.T) {
	mockTab := new(MockCrontab)
	listErr := errors.Join(errs.ErrSchedulerUnavailable, errors.New("crontab: not found"))
	mockTab.On("List", mock.Anything).Return(nil, listErr)

	err := registrar.New(mockTab).Install(context.Background(), pythonJob)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)
	mockTab.AssertExpectations(t)
	mockTab.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestInstall_ListFailureLeavesScheduleUnchanged(t *testing.T) {
	tab := crontabtest.New("0 3 * * * /usr/local/bin/backup")
	tab.ListErr = errs.ErrSchedulerUnavailable

	err := registrar.New(tab).Install(context.Background(), pythonJob)

	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)
	assert.Equal(t, 0, tab.Replaces)
	assert.Equal(t, []string{"0 3 * * * /usr/local/bin/backup"}, tab.Lines())
}

func TestInstall_ReplaceFailureKeepsPriorList(t *testing.T) {
	tab := crontabtest.New("0 3 * * * /usr/local/bin/backup")
	tab.ReplaceErr = errs.ErrSchedulerUnavailable

	err := registrar.New(tab).Install(context.Background(), pythonJob)

	assert.ErrorIs(t, err, errs.ErrSchedulerUnavailable)
	assert.Contains(t, err.Error(), "write schedule")
	assert.Equal(t, 1, tab.Replaces)
	assert.Equal(t, []string{"0 3 * * * /usr/local/bin/backup"}, tab.Lines())
}

func TestInstall_ReplacesWithFullList(t *testing.T) {
	mockTab := new(MockCrontab)
	mockTab.On("List", mock.Anything).Return([]string{"@reboot /usr/bin/true"}, nil)
	mockTab.On("Replace", mock.Anything, []string{"@reboot /usr/bin/true", pythonLine}).Return(nil)

	require.NoError(t, registrar.New(mockTab).Install(context.Background(), pythonJob))
	mockTab.AssertExpectations(t)
}

func TestInstall_PermissiveByDefault(t *testing.T) {
	tab := crontabtest.New()
	odd := registrar.Entry{Cadence: "every so often", Interpreter: "python", Script: "relative/job.py"}

	require.NoError(t, registrar.New(tab).Install(context.Background(), odd))
	assert.Equal(t, []string{"every so often python relative/job.py"}, tab.Lines())
}

func TestInstall_ValidationRejectsBeforeRead(t *testing.T) {
	require.NoError(t, i18n.Init())
	tab := crontabtest.New()
	bad := registrar.Entry{Cadence: "99 * * * *", Interpreter: "/usr/bin/python3", Script: "/srv/jobs/run.py"}

	err := registrar.New(tab, registrar.WithValidation(true)).Install(context.Background(), bad)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	i18nErr, ok := i18n.AsError(err)
	require.True(t, ok)
	assert.Equal(t, i18n.ErrInvalidSchedule, i18nErr.MsgID)
	assert.Equal(t, "99 * * * *", i18nErr.Data["Cadence"])
	assert.Equal(t, 0, tab.Lists)
	assert.Empty(t, tab.Lines())
}

func TestInstall_ValidationAcceptsGoodCadence(t *testing.T) {
	tab := crontabtest.New()

	err := registrar.New(tab, registrar.WithValidation(true)).Install(context.Background(), pythonJob)

	require.NoError(t, err)
	assert.Equal(t, []string{pythonLine}, tab.Lines())
}

func TestPreview_DoesNotWrite(t *testing.T) {
	tab := crontabtest.New("0 3 * * * /usr/local/bin/backup")

	lines, err := registrar.New(tab).Preview(context.Background(), pythonJob)

	require.NoError(t, err)
	assert.Equal(t, []string{"0 3 * * * /usr/local/bin/backup", pythonLine}, lines)
	assert.Equal(t, 0, tab.Replaces)
	assert.Equal(t, []string{"0 3 * * * /usr/local/bin/backup"}, tab.Lines())
}
