package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// HeadSize is how many leading bytes ValidateUpload reads for the signature check.
const HeadSize = 512

// Upload is what the validator needs from an uploaded file. Name and Type are
// client supplied and must not be trusted on their own.
type Upload interface {
	Name() string
	Type() string
	Size() int64
	// Head returns up to n leading bytes of the content.
	Head(n int) ([]byte, error)
	Open() (io.ReadCloser, error)
}

type headerUpload struct {
	fh *multipart.FileHeader
}

// FromFileHeader adapts a multipart file. It panics on a nil header.
func FromFileHeader(fh *multipart.FileHeader) Upload {
	if fh == nil {
		panic(ErrNilFileHeader)
	}
	return headerUpload{fh: fh}
}

func (u headerUpload) Name() string { return u.fh.Filename }
func (u headerUpload) Type() string { return u.fh.Header.Get("Content-Type") }
func (u headerUpload) Size() int64  { return u.fh.Size }

func (u headerUpload) Open() (io.ReadCloser, error) {
	f, err := u.fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

func (u headerUpload) Head(n int) ([]byte, error) {
	f, err := u.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readHead(f, n)
}

type bytesUpload struct {
	name, mime string
	data       []byte
}

// FromBytes builds an Upload from in-memory content.
func FromBytes(name, mimeType string, data []byte) Upload {
	return bytesUpload{name: name, mime: mimeType, data: data}
}

func (u bytesUpload) Name() string { return u.name }
func (u bytesUpload) Type() string { return u.mime }
func (u bytesUpload) Size() int64  { return int64(len(u.data)) }

func (u bytesUpload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(u.data)), nil
}

func (u bytesUpload) Head(n int) ([]byte, error) {
	if n > len(u.data) {
		n = len(u.data)
	}
	return u.data[:n], nil
}

func readHead(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return buf[:read], nil
}
