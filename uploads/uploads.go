// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/biryani-lagbe/reports"
)

// URLPrefix is the path under which saved images are served.
const URLPrefix = "uploads/"

// sniffLen is how much http.DetectContentType looks at.
const sniffLen = 512

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedType = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// TooLargeError reports an upload over the configured limit.
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return "Upload exceeds " + humanize.Bytes(uint64(e.Limit))
}

// UnsupportedError reports a file that is not an accepted image.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return e.Reason
}

// Dir stores proof images on local disk.
type Dir struct {
	Root     string
	MaxBytes int64
}

func New(root string, maxBytes int64) *Dir {
	return &Dir{Root: root, MaxBytes: maxBytes}
}

// Save checks that fh is a jpeg, png or webp image within the size limit
// and writes it under a fresh name. It returns the public relative path.
func (d *Dir) Save(fh *multipart.FileHeader) (string, error) {
	if d.MaxBytes > 0 && fh.Size > d.MaxBytes {
		return "", &TooLargeError{Limit: d.MaxBytes}
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", &UnsupportedError{Reason: "Only jpg, png or webp images are allowed"}
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", &UnsupportedError{Reason: "Uploaded image is empty"}
	}
	if ct := http.DetectContentType(head); !allowedType[ct] {
		return "", &UnsupportedError{Reason: "Uploaded file is not a supported image"}
	}

	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := reports.NewID() + ext
	full := filepath.Join(d.Root, name)
	dst, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	_, err = dst.Write(head)
	if err == nil {
		_, err = io.Copy(dst, src)
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write upload: %w", err)
	}

	return URLPrefix + name, nil
}

// Remove deletes an image previously returned by Save. Paths outside the
// upload directory are ignored.
func (d *Dir) Remove(rel string) error {
	name, ok := strings.CutPrefix(rel, URLPrefix)
	if !ok || name == "" || name != path.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(d.Root, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
