// Package clusterfs manages the per-cluster configuration directories:
// <root>/<cluster>/config.properties plus site and keytab files.
package clusterfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

const PropertiesFile = "config.properties"

type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// NewOSStore is a Store on the local disk.
func NewOSStore(root string) *Store {
	return NewStore(afero.NewOsFs(), root)
}

func (s *Store) Root() string { return s.root }

func (s *Store) Dir(cluster string) string {
	return filepath.Join(s.root, cluster)
}

func (s *Store) Path(cluster, file string) string {
	return filepath.Join(s.root, cluster, file)
}

func (s *Store) Exists(cluster string) bool {
	ok, err := afero.DirExists(s.fs, s.Dir(cluster))
	return err == nil && ok
}

// FindDir returns the existing directory name matching cluster
// case-insensitively. An unreadable root counts as no match.
func (s *Store) FindDir(cluster string) (string, bool) {
	infos, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return "", false
	}
	for _, info := range infos {
		if info.IsDir() && strings.EqualFold(info.Name(), cluster) {
			return info.Name(), true
		}
	}
	return "", false
}

// ListFiles returns the file names in a cluster directory, sorted. Read
// errors yield no files.
func (s *Store) ListFiles(cluster string) []string {
	infos, err := afero.ReadDir(s.fs, s.Dir(cluster))
	if err != nil {
		return nil
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names
}

// WriteFile stores data under the cluster directory and returns its path.
func (s *Store) WriteFile(cluster, file string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.Dir(cluster), 0o755); err != nil {
		return "", fmt.Errorf("create cluster dir: %w", err)
	}
	path := s.Path(cluster, file)
	if err := afero.WriteFile(s.fs, path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", file, err)
	}
	return path, nil
}

func (s *Store) ReadFile(cluster, file string) ([]byte, error) {
	return afero.ReadFile(s.fs, s.Path(cluster, file))
}

func (s *Store) FileExists(cluster, file string) bool {
	ok, err := afero.Exists(s.fs, s.Path(cluster, file))
	return err == nil && ok
}

// LoadProperties reads config.properties; a missing file yields an empty set.
func (s *Store) LoadProperties(cluster string) (*properties.Properties, error) {
	data, err := s.ReadFile(cluster, PropertiesFile)
	if errors.Is(err, os.ErrNotExist) {
		p := properties.NewProperties()
		p.DisableExpansion = true
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", PropertiesFile, err)
	}
	p, err := ParseProperties(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", PropertiesFile, err)
	}
	return p, nil
}

// ParseProperties decodes an uploaded config.properties.
func ParseProperties(data []byte) (*properties.Properties, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	return loader.LoadBytes(data)
}

func (s *Store) SaveProperties(cluster string, p *properties.Properties) error {
	var buf bytes.Buffer
	if _, err := p.Write(&buf, properties.UTF8); err != nil {
		return fmt.Errorf("encode %s: %w", PropertiesFile, err)
	}
	_, err := s.WriteFile(cluster, PropertiesFile, buf.Bytes())
	return err
}

func (s *Store) Remove(cluster string) error {
	return s.fs.RemoveAll(s.Dir(cluster))
}

// RemoveFile deletes one file of a cluster; a missing file is not an error.
func (s *Store) RemoveFile(cluster, file string) error {
	err := s.fs.Remove(s.Path(cluster, file))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Owns reports whether path is a file directly inside the cluster directory.
func (s *Store) Owns(cluster, path string) bool {
	return path != "" && filepath.Dir(filepath.Clean(path)) == s.Dir(cluster)
}

// Move copies every file of from into to (files already in to are kept
// unless from has the same name) and removes from.
func (s *Store) Move(from, to string) error {
	if from == to {
		return nil
	}
	if strings.EqualFold(from, to) {
		// case-only rename; go through a scratch dir for case-insensitive filesystems
		tmp, err := s.TempDir(".rename-")
		if err != nil {
			return err
		}
		if err := s.Move(from, tmp); err != nil {
			_ = s.Remove(tmp)
			return err
		}
		from = tmp
	}
	if err := s.Copy(from, to); err != nil {
		return err
	}
	return s.Remove(from)
}

// TempDir creates a new empty directory under the root whose name starts
// with prefix and returns its name.
func (s *Store) TempDir(prefix string) (string, error) {
	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create configs root: %w", err)
	}
	dir, err := afero.TempDir(s.fs, s.root, prefix)
	if err != nil {
		return "", err
	}
	return filepath.Base(dir), nil
}

func (s *Store) Copy(from, to string) error {
	if err := s.fs.MkdirAll(s.Dir(to), 0o755); err != nil {
		return fmt.Errorf("create cluster dir: %w", err)
	}
	var errs error
	for _, name := range s.ListFiles(from) {
		errs = multierr.Append(errs, s.copyFile(s.Path(from, name), s.Path(to, name)))
	}
	return errs
}

func (s *Store) copyFile(src, dst string) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		return multierr.Append(err, out.Close())
	}
	return out.Close()
}
