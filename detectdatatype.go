package gwasmisc

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"io"

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

// ErrUnixCompress is returned for .Z streams made by the Unix compress tool.
// Its LZW framing is not the one compress/lzw reads.
var ErrUnixCompress = errors.New("unix compress (.Z) input is not supported; decompress it first")

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err == io.ErrUnexpectedEOF || (err == io.EOF && n == 0) {
		// Too short to carry any signature, so treat it as plain text (an
		// empty file is a legitimate, if useless, table).
		return DataTypeNoCompression, nil
	} else if err != nil {
		return DataTypeInvalid, err
	}

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser sniffs the compression of rs and returns a reader
// that yields the decompressed bytes. rs is rewound before the decompressor
// is attached. Closing the returned reader does not close rs.
func MaybeDecompressReadCloser(rs io.ReadSeeker) (io.ReadCloser, error) {
	dt, err := DetectDataType(rs)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		return gzip.NewReader(rs)
	case DataTypeZip:
		return &readCloserFaker{zipstream.NewReader(rs)}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(rs)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(rs, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{reader}, nil
	case DataTypeZ:
		return nil, pfx.Err(ErrUnixCompress)
	}

	// No data type detected. For now, we assume this is uncompressed.
	return &readCloserFaker{rs}, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
