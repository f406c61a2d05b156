package keygen

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/eisenwinter/appkey/alias"
	"github.com/eisenwinter/appkey/config"
	"github.com/eisenwinter/appkey/console"
	"github.com/eisenwinter/appkey/generator"
	"github.com/eisenwinter/appkey/keygen/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const fixedKey = "base64:XYZ0123456789abcdefghijklmnopqrstuvwxyzABC="

type fixture struct {
	dir     string
	out     *bytes.Buffer
	logs    *observer.ObservedLogs
	confirm *mocks.Confirmer
	keys    *mocks.KeySource
}

func newFixture(t *testing.T, envContent string) *fixture {
	t.Helper()
	dir := t.TempDir()
	if envContent != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0o644))
	}
	return &fixture{
		dir:     dir,
		out:     &bytes.Buffer{},
		confirm: mocks.NewConfirmer(t),
		keys:    mocks.NewKeySource(t),
	}
}

func (f *fixture) generator(t *testing.T, currentKey string) *KeyGenerator {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	f.logs = logs
	resolver, err := alias.New(f.dir)
	require.NoError(t, err)
	cfg := &config.AppConfiguration{BasePath: f.dir, EnvFile: ".env", Key: currentKey}
	return New(zap.New(core), cfg, f.keys, resolver, f.confirm, console.NewPlainOutput(f.out))
}

func (f *fixture) env(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, ".env"))
	require.NoError(t, err)
	return string(data)
}

func TestGenerateKey(t *testing.T) {
	resolver, err := alias.New(t.TempDir())
	require.NoError(t, err)
	g := New(zap.NewNop(), &config.AppConfiguration{EnvFile: ".env"}, generator.New(), resolver,
		mocks.NewConfirmer(t), console.NewPlainOutput(&bytes.Buffer{}))

	key, err := g.GenerateKey()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "base64:"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(key, "base64:"))
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := g.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateKeyMarksSourceErrors(t *testing.T) {
	f := newFixture(t, "")
	f.keys.On("CreateAppKey").Return("", errors.New("no entropy"))
	_, err := f.generator(t, "").GenerateKey()
	assert.True(t, errors.Is(err, ErrRandomSource))
}

func TestRunShowOnly(t *testing.T) {
	content := "FOO=bar\nAPP_KEY=abc123\n"
	f := newFixture(t, content)
	f.keys.On("CreateAppKey").Return(fixedKey, nil)

	err := f.generator(t, "abc123").Run(true)
	require.NoError(t, err)
	assert.Equal(t, fixedKey+"\n", f.out.String())
	assert.Equal(t, content, f.env(t))
}

func TestRunReplacesConfirmedKey(t *testing.T) {
	f := newFixture(t, "FOO=bar\nAPP_KEY=abc123\nBAZ=qux\n")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)
	f.confirm.On("Confirm", replaceConfirmation, false).Return(true, nil)

	err := f.generator(t, "abc123").Run(false)
	require.NoError(t, err)
	assert.Equal(t, "FOO=bar\nAPP_KEY="+fixedKey+"\nBAZ=qux\n", f.env(t))
	assert.Equal(t,
		"[WARNING] Old APP_KEY is: abc123, please backup if you need.\n"+
			"Application key ["+fixedKey+"] set successfully.\n",
		f.out.String())
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunDeclined(t *testing.T) {
	content := "FOO=bar\nAPP_KEY=abc123\n"
	f := newFixture(t, content)
	f.keys.On("CreateAppKey").Return(fixedKey, nil)
	f.confirm.On("Confirm", replaceConfirmation, false).Return(false, nil)

	err := f.generator(t, "abc123").Run(false)
	require.NoError(t, err)
	assert.Empty(t, f.out.String())
	assert.Equal(t, content, f.env(t))
}

func TestRunConfirmError(t *testing.T) {
	content := "APP_KEY=abc123\n"
	f := newFixture(t, content)
	f.keys.On("CreateAppKey").Return(fixedKey, nil)
	f.confirm.On("Confirm", replaceConfirmation, false).Return(false, errors.New("stdin closed"))

	err := f.generator(t, "abc123").Run(false)
	assert.Error(t, err)
	assert.Equal(t, content, f.env(t))
}

func TestRunForceSkipsConfirmation(t *testing.T) {
	f := newFixture(t, "APP_KEY=abc123\n")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)

	err := f.generator(t, "abc123").WithForce(true).Run(false)
	require.NoError(t, err)
	assert.Equal(t, "APP_KEY="+fixedKey+"\n", f.env(t))
	assert.Contains(t, f.out.String(), "[WARNING] Old APP_KEY is: abc123")
}

func TestRunWithoutCurrentKeyDoesNotInsert(t *testing.T) {
	content := "FOO=bar\nBAZ=qux\n"
	f := newFixture(t, content)
	f.keys.On("CreateAppKey").Return(fixedKey, nil)

	err := f.generator(t, "").Run(false)
	require.NoError(t, err)
	assert.Equal(t, content, f.env(t))
	assert.Equal(t, "Application key ["+fixedKey+"] set successfully.\n", f.out.String())
	assert.Equal(t, 1, f.logs.FilterMessage("APP_KEY line not replaced").Len())
}

func TestRunWithoutCurrentKeyFillsEmptyAssignment(t *testing.T) {
	f := newFixture(t, "APP_NAME=demo\nAPP_KEY=\nAPP_DEBUG=true\n")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)

	err := f.generator(t, "").Run(false)
	require.NoError(t, err)
	assert.Equal(t, "APP_NAME=demo\nAPP_KEY="+fixedKey+"\nAPP_DEBUG=true\n", f.env(t))
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunDivergedKeyLeavesFile(t *testing.T) {
	content := "APP_KEY=from-file\n"
	f := newFixture(t, content)
	f.keys.On("CreateAppKey").Return(fixedKey, nil)
	f.confirm.On("Confirm", replaceConfirmation, false).Return(true, nil)

	err := f.generator(t, "from-process").Run(false)
	require.NoError(t, err)
	assert.Equal(t, content, f.env(t))
	assert.Equal(t, 1, f.logs.FilterMessage("APP_KEY line not replaced").Len())
}

func TestRunPrefixMatchIsReported(t *testing.T) {
	f := newFixture(t, "APP_KEY=abc123tail\n")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)
	f.confirm.On("Confirm", replaceConfirmation, false).Return(true, nil)

	err := f.generator(t, "abc123").Run(false)
	require.NoError(t, err)
	assert.Equal(t, "APP_KEY="+fixedKey+"tail\n", f.env(t))
	assert.Equal(t, 1, f.logs.FilterMessage("APP_KEY in environment file differs from the generated key").Len())
}

func TestRunKeepsCRLF(t *testing.T) {
	f := newFixture(t, "FOO=bar\r\nAPP_KEY=abc123\r\nBAZ=qux\r\n")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)
	f.confirm.On("Confirm", replaceConfirmation, false).Return(true, nil)

	require.NoError(t, f.generator(t, "abc123").Run(false))
	assert.Equal(t, "FOO=bar\r\nAPP_KEY="+fixedKey+"\r\nBAZ=qux\r\n", f.env(t))
}

func TestRunRandomSourceFailure(t *testing.T) {
	content := "APP_KEY=abc123\n"
	f := newFixture(t, content)
	f.keys.On("CreateAppKey").Return("", errors.Mark(errors.New("no entropy"), generator.ErrRandomSource))

	err := f.generator(t, "abc123").Run(false)
	assert.True(t, errors.Is(err, ErrRandomSource))
	assert.Empty(t, f.out.String())
	assert.Equal(t, content, f.env(t))
}

func TestRunMissingEnvironmentFile(t *testing.T) {
	f := newFixture(t, "")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)

	err := f.generator(t, "").Run(false)
	assert.True(t, errors.Is(err, ErrFileIO))
	assert.Empty(t, f.out.String())
}

func TestRunShowOnlyWithoutEnvironmentFile(t *testing.T) {
	f := newFixture(t, "")
	f.keys.On("CreateAppKey").Return(fixedKey, nil)

	require.NoError(t, f.generator(t, "").Run(true))
	_, err := os.Stat(filepath.Join(f.dir, ".env"))
	assert.True(t, os.IsNotExist(err))
}
