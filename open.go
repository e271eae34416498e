package genepanel

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType peeks at the head of the stream and matches it against known
// compression signatures. Nothing is consumed from r. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r *bufio.Reader) (DataType, error) {
	head, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	for dt, sig := range byteCodeSigs {
		if len(head) >= len(sig) && bytes.Equal(head[:len(sig)], sig) {
			return dt, nil
		}
	}

	if isZlibHeader(head) {
		return DataTypeZ, nil
	}

	return DataTypeNoCompression, nil
}

// Open opens a local file or, if client is non-nil and the path starts with
// gs://, a Google Storage object. Compressed content is decompressed
// transparently. The caller must close the result.
// isZlibHeader matches a zlib stream at any compression level. The first byte
// must be 0x78 (deflate with a 32K window) and the header must be a multiple
// of 31. Preset dictionaries are not supported.
func isZlibHeader(head []byte) bool {
	if len(head) < 2 || head[0] != 0x78 || head[1]&0x20 != 0 {
		return false
	}

	return (uint16(head[0])<<8|uint16(head[1]))%31 == 0
}

func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, path, client)
	if err != nil {
		return nil, err
	}

	rc, err := maybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return rc, nil
}

// Exists reports whether the path can be found. Only a definitive "not found"
// yields false with a nil error.
func Exists(ctx context.Context, path string, client *storage.Client) (bool, error) {
	if bucket, object, ok := splitGSPath(path, client); ok {
		_, err := client.Bucket(bucket).Object(object).Attrs(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return false, nil
		} else if err != nil {
			return false, pfx.Err(err)
		}
		return true, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, pfx.Err(err)
	}

	return true, nil
}

// IsGoogleStoragePath reports whether path points at a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

func splitGSPath(path string, client *storage.Client) (bucket, object string, ok bool) {
	if client == nil || !IsGoogleStoragePath(path) {
		return "", "", false
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return "", "", false
	}

	return pathParts[0], pathParts[1], true
}

func openRaw(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if IsGoogleStoragePath(path) {
		bucket, object, ok := splitGSPath(path, client)
		if !ok {
			return nil, fmt.Errorf("Tried to open %s but no storage client was configured or the path has no object name", path)
		}

		rdr, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		return rdr, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

func maybeDecompress(raw io.ReadCloser) (io.ReadCloser, error) {
	buffered := bufio.NewReader(raw)

	dt, err := DetectDataType(buffered)
	if err != nil {
		return nil, err
	}

	var inner io.Reader
	switch dt {
	case DataTypeGzip:
		inner, err = gzip.NewReader(buffered)
	case DataTypeZip:
		// Only the first member of an archive is read.
		zr := zipstream.NewReader(buffered)
		if _, err = zr.Next(); err == nil {
			inner = zr
		}
	case DataTypeBZip2:
		inner = bzip2.NewReader(buffered)
	case DataTypeXZ:
		inner, err = xz.NewReader(buffered, 0)
	case DataTypeZ:
		inner, err = zlib.NewReader(buffered)
	default:
		// No data type detected. For now, we assume this is uncompressed.
		inner = buffered
	}
	if err != nil {
		return nil, err
	}

	return &layeredReadCloser{Reader: inner, closer: raw}, nil
}

// layeredReadCloser reads from the (possibly decompressing) outer reader but
// closes the underlying file or object reader.
type layeredReadCloser struct {
	io.Reader
	closer io.Closer
}

func (c *layeredReadCloser) Close() error {
	if rc, ok := c.Reader.(io.Closer); ok {
		rc.Close()
	}

	return c.closer.Close()
}
