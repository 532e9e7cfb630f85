package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"smc/internal/logger"
	"smc/internal/manifest"
	"smc/internal/models"

	"github.com/google/renameio/v2"
)

const (
	DirMode  = 0o755
	FileMode = 0o644
)

const templateSkeleton = `name = %q
enable = false

[scripts]
health_check = "exit 1"
# pre_start = ""
start = "exit 1"
# stop = ""
# post_stop = ""
`

/**
 * TemplateManager 模板与服务目录的创建和删除
 * @property {*WorkDirectory} work - Working directory, paths only, files live on disk
 * @description
 * - Every file is written atomically through renameio
 * - Names must be a single path element
 */
type TemplateManager struct {
	work *WorkDirectory
}

func NewTemplateManager(work *WorkDirectory) *TemplateManager {
	return &TemplateManager{work: work}
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return nil
}

// templateDir resolves a template name, nested names included, below templates/.
func (tm *TemplateManager) templateDir(template string) (string, error) {
	root := tm.work.TemplatesDir()
	dir := filepath.Join(root, template)
	rel, err := filepath.Rel(root, dir)
	if err != nil || template == "" || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w %q", ErrInvalidName, template)
	}
	return dir, nil
}

// CreateTemplate writes a parseable skeleton manifest to templates/<name>.
func (tm *TemplateManager) CreateTemplate(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", &ServiceError{Op: OpCreateTemplate, Service: name, Err: err}
	}
	dir := filepath.Join(tm.work.TemplatesDir(), name)
	if _, err := os.Stat(dir); err == nil {
		return "", &ServiceError{Op: OpCreateTemplate, Service: name, Err: ErrAlreadyExists}
	}
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return "", &ServiceError{Op: OpCreateTemplate, Service: name, Err: err}
	}

	path := filepath.Join(dir, manifest.FileName)
	if err := renameio.WriteFile(path, []byte(fmt.Sprintf(templateSkeleton, name)), FileMode); err != nil {
		return "", &ServiceError{Op: OpCreateTemplate, Service: name, Err: err}
	}
	logger.Infof("Template '%s' created at %s", name, dir)
	return path, nil
}

// DeleteTemplate removes templates/<name>.
func (tm *TemplateManager) DeleteTemplate(name string) error {
	if err := validateName(name); err != nil {
		return &ServiceError{Op: OpDeleteTemplate, Service: name, Err: err}
	}
	dir := filepath.Join(tm.work.TemplatesDir(), name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return &ServiceError{Op: OpDeleteTemplate, Service: name, Err: ErrTemplateNotFound}
	}
	if err := os.RemoveAll(dir); err != nil {
		return &ServiceError{Op: OpDeleteTemplate, Service: name, Err: err}
	}
	logger.Infof("Template '%s' deleted", name)
	return nil
}

/**
 * CreateService 从模板创建服务
 * @param {string} template - Template directory name under templates/
 * @param {string} name - New service name, also its directory name
 * @returns {string} Path of the new manifest
 * @returns {error} ErrTemplateNotFound, ErrAlreadyExists or a copy error
 * @description
 * - Copies the template tree, keeping file modes and symlinks
 * - Rewrites the manifest name, the rest of the manifest is kept
 * - Creates data/<name>
 * - Removes the half-written service directory on failure
 */
func (tm *TemplateManager) CreateService(template, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", &ServiceError{Op: OpCreate, Service: name, Err: err}
	}
	src, err := tm.templateDir(template)
	if err != nil {
		return "", &ServiceError{Op: OpCreate, Service: name, Err: err}
	}
	m, err := manifest.Load(filepath.Join(src, manifest.FileName))
	if err != nil && !(m != nil && errors.Is(err, manifest.ErrUnbalancedBraces)) {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrTemplateNotFound
		}
		return "", &ServiceError{Op: OpCreate, Service: name, Err: fmt.Errorf("template %q: %w", template, err)}
	}

	dst := filepath.Join(tm.work.ServicesDir(), name)
	if _, err := os.Stat(dst); err == nil {
		return "", &ServiceError{Op: OpCreate, Service: name, Err: ErrAlreadyExists}
	}
	if existing, _ := tm.work.Services(nil); existing != nil {
		for _, svc := range existing {
			if svc.Name == name {
				return "", &ServiceError{Op: OpCreate, Service: name, Err: fmt.Errorf("%w in %s", ErrAlreadyExists, svc.Dir)}
			}
		}
	}

	path, err := tm.scaffold(src, dst, m, name)
	if err != nil {
		_ = os.RemoveAll(dst)
		return "", &ServiceError{Op: OpCreate, Service: name, Err: err}
	}
	if err := os.MkdirAll(tm.work.ServiceDataDir(name), DirMode); err != nil {
		_ = os.RemoveAll(dst)
		return "", &ServiceError{Op: OpCreate, Service: name, Err: err}
	}
	logger.Infof("Service '%s' created from template '%s'", name, template)
	return path, nil
}

func (tm *TemplateManager) scaffold(src, dst string, m *manifest.Manifest, name string) (string, error) {
	manifestPath := filepath.Join(src, manifest.FileName)
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return os.MkdirAll(target, DirMode)
		case path == manifestPath:
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return renameio.WriteFile(target, data, info.Mode().Perm())
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	svc := m.Clone()
	svc.Name = name
	data, err := svc.Marshal()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dst, manifest.FileName)
	if err := renameio.WriteFile(path, data, FileMode); err != nil {
		return "", err
	}
	return path, nil
}

/**
 * DeleteService 删除未运行的服务
 * @param {context.Context} ctx - Cancels the health check
 * @param {*ServiceInformation} svc - Service to delete
 * @param {bool} purge - Also remove its data directory
 * @returns {error} ErrServiceRunning when the health check reports running
 */
func (tm *TemplateManager) DeleteService(ctx context.Context, svc *ServiceInformation, purge bool) error {
	status, err := svc.RefreshStatus(ctx)
	if err != nil {
		return &ServiceError{Op: OpDelete, Service: svc.Name, Err: err}
	}
	if status == models.StatusRunning {
		return &ServiceError{Op: OpDelete, Service: svc.Name, Err: ErrServiceRunning}
	}

	if err := removeWithin(tm.work.ServicesDir(), svc.Dir); err != nil {
		return &ServiceError{Op: OpDelete, Service: svc.Name, Err: err}
	}
	if purge && svc.DataDir != "" {
		if err := removeWithin(tm.work.DataDir(), svc.DataDir); err != nil {
			return &ServiceError{Op: OpDelete, Service: svc.Name, Err: err}
		}
	}
	logger.Infof("Service '%s' deleted", svc.Name)
	return nil
}

// removeWithin deletes dir only when it lies strictly below root.
func removeWithin(root, dir string) error {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s outside %s", dir, root)
	}
	return os.RemoveAll(dir)
}
