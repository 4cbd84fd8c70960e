package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned for archives without any files.
var ErrEmptyArchive = errors.New("utils: archive is empty")

// LoadFile loads the given file and performs decompression if necessary,
// judged by its extension. From archives holding several files, the
// first ROM image is loaded, or the first file if none look like one.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = openZip(data)
	case ".7z":
		decoder, err = open7z(data)
	default:
		// .gb, .gbc and anything else is returned as is
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("utils: opening %s: %w", filename, err)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read the decompressed data into a byte slice
	return io.ReadAll(decoder)
}

func isROM(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gb", ".gbc":
		return true
	}
	return false
}

func openZip(data []byte) (io.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}
	f := r.File[0]
	for _, file := range r.File {
		if isROM(file.Name) {
			f = file
			break
		}
	}
	return f.Open()
}

func open7z(data []byte) (io.Reader, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}
	f := r.File[0]
	for _, file := range r.File {
		if isROM(file.Name) {
			f = file
			break
		}
	}
	return f.Open()
}
