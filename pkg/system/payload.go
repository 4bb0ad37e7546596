package system

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/gizmo-platform/gizmo-setup/pkg/utils"
	"github.com/sirupsen/logrus"
)

// payloadWriter implements DriveManager.Write for every platform; writing
// goes through the mounted filesystem, not the raw device.
type payloadWriter struct {
	log *logrus.Entry
}

func (p payloadWriter) Write(source string, dev gizmo.Device, overwrite bool) error {
	log := p.log.WithFields(logrus.Fields{"source": source, "device": dev.Path})

	if strings.EqualFold(filepath.Ext(source), ".zip") {
		log.Info("extracting archive onto drive")
		return ExtractZip(source, dev.Path, overwrite)
	}

	log.Info("copying file onto drive")
	_, err := utils.CopyFile(source, dev.Path, overwrite)
	return err
}

// ExtractZip unpacks archive into dest. When every entry lives under one
// top-level directory that directory is stripped, so the archive's
// contents land in the volume root.
func ExtractZip(archive, dest string, overwrite bool) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", archive, err)
	}
	defer r.Close()

	strip := commonTopLevel(r.File)

	for _, f := range r.File {
		name := strings.TrimPrefix(f.Name, strip)
		if name == "" {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(name))
		if !isWithin(target, dest) {
			return fmt.Errorf("archive entry %q escapes the destination", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := extractFile(f, target, overwrite); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(target, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists on the drive", target)
		}
		return err
	}
	defer out.Close()

	in, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s from archive: %w", f.Name, err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return out.Close()
}

// commonTopLevel returns "dir/" when all entries share that single
// top-level directory, otherwise "".
func commonTopLevel(files []*zip.File) string {
	top := ""
	for _, f := range files {
		first, _, found := strings.Cut(f.Name, "/")
		if !found {
			return ""
		}
		if top == "" {
			top = first
		} else if first != top {
			return ""
		}
	}
	if top == "" {
		return ""
	}
	return top + "/"
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
