package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"smc/internal/manifest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiskWorkDirectory(t *testing.T) *WorkDirectory {
	t.Helper()
	w := NewWorkDirectory(afero.NewOsFs(), t.TempDir())
	require.NoError(t, w.Init())
	return w
}

func TestCreateTemplate(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)

	path, err := tm.CreateTemplate("redis")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.TemplatesDir(), "redis", manifest.FileName), path)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", m.Name)
	assert.False(t, m.Enabled())

	_, err = tm.CreateTemplate("redis")
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	for _, bad := range []string{"", ".", "..", "a/b"} {
		_, err = tm.CreateTemplate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDeleteTemplate(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)

	_, err := tm.CreateTemplate("redis")
	require.NoError(t, err)
	require.NoError(t, tm.DeleteTemplate("redis"))

	_, err = os.Stat(filepath.Join(w.TemplatesDir(), "redis"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.True(t, errors.Is(tm.DeleteTemplate("redis"), ErrTemplateNotFound))
	assert.Error(t, tm.DeleteTemplate(".."))
}

func TestCreateServiceFromTemplate(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)

	src := filepath.Join(w.TemplatesDir(), "web")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, manifest.FileName), []byte(`
name = "web"
enable = true

[scripts]
health_check = "./bin/check {PORT}"
start = "./bin/run"
stop = "pkill -f bin/run"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "run"), []byte("#!/bin/sh\nexit 0\n"), 0o755))
	require.NoError(t, os.Symlink("run", filepath.Join(src, "bin", "check")))

	path, err := tm.CreateService("web", "shop")
	require.NoError(t, err)

	dst := filepath.Join(w.ServicesDir(), "shop")
	assert.Equal(t, filepath.Join(dst, manifest.FileName), path)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", m.Name)
	assert.True(t, m.Enabled())
	assert.Equal(t, "./bin/check {PORT}", m.Scripts.HealthCheck)
	require.NotNil(t, m.Scripts.Stop)

	info, err := os.Stat(filepath.Join(dst, "bin", "run"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	link, err := os.Readlink(filepath.Join(dst, "bin", "check"))
	require.NoError(t, err)
	assert.Equal(t, "run", link)

	data, err := os.Stat(w.ServiceDataDir("shop"))
	require.NoError(t, err)
	assert.True(t, data.IsDir())

	// template untouched
	orig, err := manifest.Load(filepath.Join(src, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "web", orig.Name)

	_, err = tm.CreateService("web", "shop")
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestCreateServiceErrors(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)

	_, err := tm.CreateService("ghost", "svc")
	assert.True(t, errors.Is(err, ErrTemplateNotFound))

	_, err = tm.CreateTemplate("base")
	require.NoError(t, err)

	_, err = tm.CreateService("base", "../escape")
	assert.Error(t, err)

	for _, tmpl := range []string{"../services/other", "..", ""} {
		_, err = tm.CreateService(tmpl, "svc")
		assert.True(t, errors.Is(err, ErrInvalidName), tmpl)
	}

	// a service declaring the same name in another directory
	writeManifest(t, w.Fs, filepath.Join(w.ServicesDir(), "other", manifest.FileName), simpleManifest("taken"))
	_, err = tm.CreateService("base", "taken")
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	_, err = os.Stat(filepath.Join(w.ServicesDir(), "taken"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCreateServiceNestedTemplate(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)
	writeManifest(t, w.Fs, filepath.Join(w.TemplatesDir(), "web", "nginx", manifest.FileName), simpleManifest("nginx"))

	path, err := tm.CreateService("web/nginx", "edge")
	require.NoError(t, err)
	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "edge", m.Name)
}

func TestCreateServiceCleansUpWhenDataDirFails(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)
	_, err := tm.CreateTemplate("base")
	require.NoError(t, err)

	// a regular file where data/shop should go
	require.NoError(t, os.WriteFile(w.ServiceDataDir("shop"), []byte("x"), 0o644))

	_, err = tm.CreateService("base", "shop")
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(w.ServicesDir(), "shop"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDeleteService(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)
	_, err := tm.CreateTemplate("base")
	require.NoError(t, err)
	_, err = tm.CreateService("base", "svc")
	require.NoError(t, err)

	stub := newStub()
	services, err := w.Services(stub)
	require.NoError(t, err)
	require.Len(t, services, 1)
	svc := services[0]

	// skeleton is disabled, so enable it to exercise the running guard
	svc.Manifest.Enable = boolPtr(true)
	err = tm.DeleteService(context.Background(), svc, true)
	assert.True(t, errors.Is(err, ErrServiceRunning))
	_, err = os.Stat(svc.Dir)
	require.NoError(t, err)

	stub.codes[svc.Manifest.Scripts.HealthCheck] = 1
	require.NoError(t, tm.DeleteService(context.Background(), svc, true))

	_, err = os.Stat(svc.Dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(svc.DataDir)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDeleteServiceKeepsDataWithoutPurge(t *testing.T) {
	w := newDiskWorkDirectory(t)
	tm := NewTemplateManager(w)
	_, err := tm.CreateTemplate("base")
	require.NoError(t, err)
	_, err = tm.CreateService("base", "svc")
	require.NoError(t, err)

	services, err := w.Services(newStub())
	require.NoError(t, err)
	require.NoError(t, tm.DeleteService(context.Background(), services[0], false))

	_, err = os.Stat(w.ServiceDataDir("svc"))
	assert.NoError(t, err)
}

func TestRemoveWithinRefusesRoot(t *testing.T) {
	root := t.TempDir()
	assert.Error(t, removeWithin(root, root))
	assert.Error(t, removeWithin(root, filepath.Dir(root)))
	_, err := os.Stat(root)
	assert.NoError(t, err)
}
