// Copyright (C) 2025 The FAN Project
//
// This file is part of fan-go.
//
// fan-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fan-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fan-go.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fan-project/fan-go/pkg/diddoc"
	"github.com/fan-project/fan-go/pkg/envelope"
	"github.com/fan-project/fan-go/pkg/mediatype"
)

const (
	// rootDocumentName is the well-known base name of the node's own
	// document.
	rootDocumentName = "fan"

	// userDir is the subdirectory holding per-user documents.
	userDir = "user"
)

// FilesystemDriver serves documents from a directory tree: the root
// document at <root>/fan.<ext> and user documents at
// <root>/user/<name>.<ext>, where ext follows the configured on-disk
// format (json or cbor).
type FilesystemDriver struct {
	root   string
	format mediatype.Type
}

// NewFilesystemDriver creates a driver rooted at dir. When cborFormat is
// true, documents on disk are CBOR instead of JSON.
func NewFilesystemDriver(dir string, cborFormat bool) *FilesystemDriver {
	format := mediatype.JSON
	if cborFormat {
		format = mediatype.CBOR
	}

	return &FilesystemDriver{root: dir, format: format}
}

// LoadRoot implements Driver.
func (d *FilesystemDriver) LoadRoot(ctx context.Context) (*diddoc.Document, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, time.Time{}, err
	}

	return d.readDocument(filepath.Join(d.root, rootDocumentName+d.ext()))
}

// LoadUser implements Driver. The name is validated before any filesystem
// access.
func (d *FilesystemDriver) LoadUser(ctx context.Context, name string) (*diddoc.Document, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, time.Time{}, err
	}

	if err := validateName(name); err != nil {
		return nil, time.Time{}, err
	}

	return d.readDocument(filepath.Join(d.root, userDir, name+d.ext()))
}

func (d *FilesystemDriver) ext() string {
	if d.format == mediatype.CBOR {
		return ".cbor"
	}
	return ".json"
}

func (d *FilesystemDriver) readDocument(path string) (*diddoc.Document, time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrSource, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrSource, err)
	}

	var doc diddoc.Document
	if err := envelope.Unmarshal(d.format, data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrSource, err)
	}

	return &doc, fi.ModTime(), nil
}

// validateName rejects names that could escape the user directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
