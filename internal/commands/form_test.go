package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack/spendtrack/internal/app"
)

type fakeForm struct {
	app *app.App
	err error
}

func (f *fakeForm) Run() error { return f.err }

func stubForm(t *testing.T, err error) *fakeForm {
	t.Helper()
	fake := &fakeForm{err: err}
	orig := newForm
	newForm = func(a *app.App) runner {
		fake.app = a
		return fake
	}
	t.Cleanup(func() { newForm = orig })
	return fake
}

func TestRoot_LaunchesForm(t *testing.T) {
	fake := stubForm(t, nil)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, fake.app)
	assert.Equal(t, "expense_report.xlsx", fake.app.ReportPath())
	assert.Len(t, fake.app.Categories(), 7)
}

func TestRoot_FormErrorPropagates(t *testing.T) {
	stubForm(t, errors.New("no tty"))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running form: no tty")
}

func TestRoot_LogFile(t *testing.T) {
	stubForm(t, nil)
	logPath := filepath.Join(t.TempDir(), "spendtrack.log")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-file", logPath, "--log-level", "debug"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config loaded")
}

func TestRoot_BadLogLevel(t *testing.T) {
	stubForm(t, nil)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-level", "chatty"})
	assert.Error(t, cmd.Execute())
}
