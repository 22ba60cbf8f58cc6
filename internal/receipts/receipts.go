// Package receipts stores uploaded receipt files and hands back an opaque
// reference that bills keep in their receipt field.
package receipts

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxSize is the largest receipt accepted, in bytes.
const MaxSize = 10 << 20

var (
	ErrEmpty       = errors.New("receipt file is empty")
	ErrTooLarge    = fmt.Errorf("receipt file exceeds %d bytes", MaxSize)
	ErrUnsupported = errors.New("receipt must be an image or a PDF")
)

// Receipt is an uploaded file.
type Receipt struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store persists receipts. Upload returns the reference to attach to a bill.
type Store interface {
	Upload(ctx context.Context, r Receipt) (string, error)
	// Backend names the store in logs and metrics.
	Backend() string
}

// prepare checks a receipt and returns the object key and content type to
// store it under. The content type is sniffed from the data; the client's
// claim is ignored.
func prepare(r Receipt) (key, contentType string, err error) {
	if len(r.Data) == 0 {
		return "", "", ErrEmpty
	}
	if len(r.Data) > MaxSize {
		return "", "", ErrTooLarge
	}

	mime := mimetype.Detect(r.Data)
	if !allowed(mime) {
		return "", "", fmt.Errorf("%w: got %s", ErrUnsupported, mime.String())
	}

	ext := strings.ToLower(path.Ext(r.Filename))
	if ext == "" || len(ext) > 8 {
		ext = mime.Extension()
	}
	return uuid.New().String() + ext, mime.String(), nil
}

func allowed(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("application/pdf") || strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}
