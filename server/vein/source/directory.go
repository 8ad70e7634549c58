package source

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"gopkg.in/yaml.v3"
)

// Directory is a Source reading one definition per file from a directory tree. Files with the extension .json are
// decoded as JSON and files with the extension .yaml or .yml as YAML. The id of a definition is its path relative to
// the directory without extension, prefixed with the namespace, such as oreveins:overworld/iron.
type Directory struct {
	root      string
	namespace string
}

// NewDirectory returns a Directory reading definitions from the directory passed. Ids are prefixed with the
// namespace passed, or with oreveins if it is empty.
func NewDirectory(root, namespace string) *Directory {
	if namespace == "" {
		namespace = "oreveins"
	}
	return &Directory{root: root, namespace: namespace}
}

// Root returns the directory definitions are read from.
func (d *Directory) Root() string {
	return d.root
}

// Documents reads all definitions in the directory tree. A missing directory holds no definitions.
func (d *Directory) Documents() (map[string]doc.Document, error) {
	docs := make(map[string]doc.Document)
	var errs []error
	err := filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if p == d.root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if entry.IsDir() || !Supported(p) {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		id := d.namespace + ":" + strings.TrimSuffix(filepath.ToSlash(rel), path.Ext(rel))
		document, err := ReadFile(p)
		if err != nil {
			errs = append(errs, &FileError{Path: p, Err: err})
			return nil
		}
		docs[id] = document
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "read vein directory %v", d.root)
	}
	return docs, errors.Join(errs...)
}

// Supported checks if a file has an extension Directory reads definitions from.
func Supported(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ReadFile reads a single definition from a JSON or YAML file.
func ReadFile(p string) (doc.Document, error) {
	contents, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return Decode(contents, filepath.Ext(p))
}

// Decode decodes a definition from JSON, or from YAML if ext is .yaml or .yml.
func Decode(contents []byte, ext string) (doc.Document, error) {
	var m map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(contents, &m); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		if err := json.Unmarshal(contents, &m); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	}
	if m == nil {
		return nil, errors.New("definition must be an object")
	}
	return m, nil
}

// FileError is returned for a file that could not be read.
type FileError struct {
	Path string
	Err  error
}

// Error ...
func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap ...
func (e *FileError) Unwrap() error {
	return e.Err
}
