package services

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"smc/internal/logger"
	"smc/internal/manifest"
	"smc/internal/proc"

	"github.com/spf13/afero"
)

const (
	ServicesDirName  = "services"
	TemplatesDirName = "templates"
	DataDirName      = "data"
)

/**
 * WorkDirectory 工作目录布局
 * @property {afero.Fs} Fs - Filesystem manifests are read from
 * @property {string} Path - Root holding services/, templates/ and data/
 */
type WorkDirectory struct {
	Fs   afero.Fs
	Path string
}

// TemplateInformation is a template found under templates/.
type TemplateInformation struct {
	Name     string
	Path     string
	Manifest *manifest.Manifest
}

func NewWorkDirectory(fsys afero.Fs, path string) *WorkDirectory {
	return &WorkDirectory{Fs: fsys, Path: path}
}

func (w *WorkDirectory) ServicesDir() string  { return filepath.Join(w.Path, ServicesDirName) }
func (w *WorkDirectory) TemplatesDir() string { return filepath.Join(w.Path, TemplatesDirName) }
func (w *WorkDirectory) DataDir() string      { return filepath.Join(w.Path, DataDirName) }

// ServiceDataDir is the data directory handed to a service's scripts.
func (w *WorkDirectory) ServiceDataDir(name string) string {
	return filepath.Join(w.DataDir(), name)
}

// Init creates the working directory layout.
func (w *WorkDirectory) Init() error {
	for _, dir := range []string{w.ServicesDir(), w.TemplatesDir(), w.DataDir()} {
		if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
			return &ServiceError{Op: OpInit, Service: dir, Err: err}
		}
	}
	return nil
}

/**
 * Services 发现 services/ 下的所有服务
 * @param {proc.Executor} executor - Runs the scripts of every discovered service
 * @param {...ServiceOption} opts - Applied to every service
 * @returns {[]*ServiceInformation} Services sorted by manifest path
 * @returns {error} *MultiError describing skipped manifests, nil when none
 * @description
 * - Walks services/ recursively for manifest.toml files
 * - Unreadable or invalid manifests are skipped
 * - A manifest whose only problem is an unclosed placeholder is kept
 * - A name that is not a single path element is rejected, it names data/<name>
 * - When two manifests share a name the first one wins
 */
func (w *WorkDirectory) Services(executor proc.Executor, opts ...ServiceOption) ([]*ServiceInformation, error) {
	paths, err := w.findManifests(w.ServicesDir())
	if err != nil {
		return nil, &ServiceError{Op: OpDiscover, Service: w.ServicesDir(), Err: err}
	}

	var (
		merr     MultiError
		services []*ServiceInformation
		seen     = make(map[string]string)
	)
	for _, path := range paths {
		m, err := w.loadManifest(path)
		if err != nil {
			merr.Add(&ServiceError{Op: OpDiscover, Service: path, Err: err})
			continue
		}
		if err := validateName(m.Name); err != nil {
			merr.Add(&ServiceError{Op: OpDiscover, Service: path, Err: fmt.Errorf("service name: %w", err)})
			continue
		}
		if first, ok := seen[m.Name]; ok {
			merr.Add(&ServiceError{Op: OpDiscover, Service: path, Err: fmt.Errorf("%w, already declared in %s", ErrDuplicateService, first)})
			continue
		}
		seen[m.Name] = path
		services = append(services, NewServiceInformation(m, filepath.Dir(path), w.ServiceDataDir(m.Name), executor, opts...))
	}
	return services, merr.Err()
}

// Templates discovers every template under templates/.
func (w *WorkDirectory) Templates() ([]*TemplateInformation, error) {
	paths, err := w.findManifests(w.TemplatesDir())
	if err != nil {
		return nil, &ServiceError{Op: OpDiscover, Service: w.TemplatesDir(), Err: err}
	}

	var (
		merr      MultiError
		templates []*TemplateInformation
	)
	for _, path := range paths {
		m, err := w.loadManifest(path)
		if err != nil {
			merr.Add(&ServiceError{Op: OpDiscover, Service: path, Err: err})
			continue
		}
		dir := filepath.Dir(path)
		name, relErr := filepath.Rel(w.TemplatesDir(), dir)
		if relErr != nil {
			name = filepath.Base(dir)
		}
		templates = append(templates, &TemplateInformation{
			Name:     filepath.ToSlash(name),
			Path:     dir,
			Manifest: m,
		})
	}
	return templates, merr.Err()
}

func (w *WorkDirectory) loadManifest(path string) (*manifest.Manifest, error) {
	data, err := afero.ReadFile(w.Fs, path)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Parse(string(data))
	if err != nil {
		if m != nil && errors.Is(err, manifest.ErrUnbalancedBraces) {
			logger.Warnf("Manifest '%s': %v", path, err)
			return m, nil
		}
		return nil, err
	}
	return m, nil
}

func (w *WorkDirectory) findManifests(root string) ([]string, error) {
	if ok, err := afero.DirExists(w.Fs, root); err != nil || !ok {
		return nil, err
	}

	var paths []string
	err := afero.Walk(w.Fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && info.Name() == manifest.FileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

/**
 * SelectServices 按名称筛选服务
 * @param {[]*ServiceInformation} all - Discovered services
 * @param {[]string} names - Requested names
 * @returns {[]*ServiceInformation} Matching services in discovery order, each once
 * @returns {error} ErrServiceNotFound for every unknown name, wrapped in *MultiError
 */
func SelectServices(all []*ServiceInformation, names []string) ([]*ServiceInformation, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var selected []*ServiceInformation
	found := make(map[string]bool, len(names))
	for _, svc := range all {
		if wanted[svc.Name] {
			selected = append(selected, svc)
			found[svc.Name] = true
		}
	}

	var merr MultiError
	for _, name := range names {
		if !found[name] {
			merr.Add(&ServiceError{Op: OpDiscover, Service: name, Err: ErrServiceNotFound})
			found[name] = true
		}
	}
	return selected, merr.Err()
}
