// Package mounts provides abstracted file mounts to use as fs.FS
// filesystems. A mount is backed either by an embedded filesystem or,
// when a directory path is given, by that directory on disk. The
// package takes care of mounting both at the same level, which lets
// the embedded SQL queries be overridden by on-disk copies during
// query development without changing any call sites.
package mounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FileMount is a mount backed by either an embedded fs.FS or a
// directory path.
type FileMount struct {
	MountName string
	fs.FS
}

// String describes a FileMount as a list of its files and directories
// indented by level.
func (fm FileMount) String() string {
	o := fmt.Sprintf("fileMount %q:\n", fm.MountName)
	s, _ := PrintFS(fm.FS)
	return o + s
}

// ErrInvalidPath reports an invalid mount name.
type ErrInvalidPath struct {
	mountName string
}

// Error fulfills the error interface for ErrInvalidPath.
func (e ErrInvalidPath) Error() string {
	tpl := strings.Join([]string{
		"mount name %q is not a valid fs.ValidPath path",
		"see https://pkg.go.dev/io/fs#ValidPath for more information.",
	}, "\n")
	return fmt.Sprintf(tpl, e.mountName)
}

// NewFileMount takes an embedded fs.FS and a path to a directory. If
// dirPath is "" the embedded fs is used, otherwise the directory is
// used. MountName names the subdirectory of the embedded fs to mount,
// making it work like an os.DirFS rooted at that subdirectory.
//
// Given an embedded filesystem such as:
//
//	//go:embed sql
//	var sqlFS embed.FS
//
// the invocation
//
//	NewFileMount("sql", sqlFS, "")
//
// mounts the embedded fs at the equivalent of "sql/" rather than ".",
// so that "brands.sql" resolves the same way it would from
// os.DirFS("sql"). The invocation
//
//	NewFileMount("sql", sqlFS, "db/sql")
//
// ignores the embedded copy and mounts the on-disk directory "db/sql"
// instead.
func NewFileMount(mountName string, embeddedFS fs.FS, dirPath string) (*FileMount, error) {

	if mountName == "" {
		return nil, errors.New("no mount name provided for new file mount")
	}
	if !fs.ValidPath(mountName) {
		return nil, ErrInvalidPath{mountName}
	}

	// Without a directory override, use the embedded fs mounted at the
	// subdirectory named by mountName.
	if dirPath == "" {
		subFS, err := fs.Sub(embeddedFS, mountName)
		if err != nil {
			return nil, fmt.Errorf("could not sub-mount embedded fs at %q: %v", mountName, err)
		}
		return &FileMount{
			mountName,
			subFS,
		}, nil
	}

	s, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("new mount at %q error: %s", dirPath, err)
	}
	if !s.IsDir() {
		return nil, fmt.Errorf("new mount at %q is not a directory", dirPath)
	}

	return &FileMount{
		mountName,
		os.DirFS(dirPath),
	}, nil
}

// PrintFS makes structured print output from an fs.FS.
func PrintFS(thisFS fs.FS) (string, error) {
	var printOutput strings.Builder
	var topSeen bool
	tpl := "%s[%s] %s%s (%s)\n"

	err := fs.WalkDir(thisFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err // propagate
		}
		if !topSeen { // verbatim root as "[d] ./ (./)"
			_, err = printOutput.WriteString(fmt.Sprintf(tpl, "\n", "d", ".", "/", "."))
			if err != nil {
				return fmt.Errorf("printOutput error: %v", err)
			}
			topSeen = true
			return nil
		}
		depth := strings.Count(path, "/")
		indent := strings.Repeat("  ", depth)
		typer := "f"
		name := d.Name()
		slash := " "
		if d.IsDir() {
			slash = "/"
			typer = "d"
		}
		_, err = printOutput.WriteString(fmt.Sprintf(tpl, indent, typer, name, slash, path))
		return err
	})
	return printOutput.String(), err
}
