// Copyright 2025 MBoussel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// timeNow is swapped in tests to pin the snapshot stamp
var timeNow = time.Now

// stampLayout yields names like backup_20251126_095326
const stampLayout = "20060102_150405"

// 🔧 Options configures a snapshot
type Options struct {
	// Dir is the directory whose files are captured
	Dir string

	// Prefix is the snapshot directory name prefix (e.g. "backup")
	Prefix string

	// Patterns are glob patterns matched against base file names; a file
	// is captured when any pattern matches
	Patterns []string
}

// 📄 File describes one captured file
type File struct {
	Name     string // Base name within the snapshot directory
	Size     int64  // Size in bytes
	Checksum string // SHA-256 of the captured content
}

// 📦 Manifest lists everything a snapshot captured
type Manifest struct {
	Dir   string // Path of the snapshot directory
	Files []File // Captured files in directory order
}

// 📸 Snapshot copies every matching file in opts.Dir into a freshly created
// timestamped directory inside opts.Dir and reports what it captured. The
// directory is named prefix_YYYYMMDD_HHMMSS; a second snapshot within the
// same second fails rather than reusing or renaming the directory.
func Snapshot(ctx context.Context, opts Options) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		// Earlier snapshots live inside opts.Dir too; directories are
		// never captured.
		if entry.IsDir() {
			continue
		}
		matched, err := matchAny(opts.Patterns, entry.Name())
		if err != nil {
			return nil, err
		}
		if matched {
			names = append(names, entry.Name())
		}
	}

	dir := filepath.Join(opts.Dir, opts.Prefix+"_"+timeNow().Format(stampLayout))
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, errors.Errorf("creating snapshot directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Int("files", len(names)).Msg("snapshot directory created")

	manifest := &Manifest{Dir: dir}
	for _, name := range names {
		f, err := copyFile(filepath.Join(opts.Dir, name), filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Errorf("copying %s: %w", name, err)
		}
		manifest.Files = append(manifest.Files, f)
	}

	return manifest, nil
}

// 🔍 matchAny reports whether any pattern matches name. A malformed pattern
// is an error: skipping it would silently leave files out of the snapshot.
func matchAny(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, errors.Errorf("matching pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// copyFile copies src to dst, preserving permission bits and fingerprinting
// the content on the way through.
func copyFile(src, dst string) (File, error) {
	source, err := os.Open(src)
	if err != nil {
		return File{}, errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return File{}, errors.Errorf("inspecting source file: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return File{}, errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(destination, hash), source)
	if err != nil {
		return File{}, errors.Errorf("copying file content: %w", err)
	}

	return File{
		Name:     filepath.Base(dst),
		Size:     size,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}
