/*
 * compress.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package structure

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// zreader closes the decompressor and then the file under it.
type zreader struct {
	io.Reader
	closers []func() error
}

func (Z *zreader) Close() error {
	var first error
	for _, c := range Z.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens name for reading. Names ending in .gz or .zst are
// decompressed transparently.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError(ErrOpen, name, "", err, "Open")
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, newError(ErrOpen, name, "gzip", err, "Open")
		}
		return &zreader{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case strings.HasSuffix(lower, ".zst"):
		zs, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, newError(ErrOpen, name, "zstd", err, "Open")
		}
		return &zreader{Reader: zs, closers: []func() error{func() error { zs.Close(); return nil }, f.Close}}, nil
	}
	return f, nil
}
