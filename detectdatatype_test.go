package gwasmisc

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMaybeDecompressReadCloser(t *testing.T) {
	payload := "CHR\tBP\tP\n1\t100\t1e-8\n"

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte(payload))
	w.Close()

	for _, v := range []struct {
		Name  string
		Input []byte
		Type  DataType
	}{
		{"plain", []byte(payload), DataTypeNoCompression},
		{"gzip", gz.Bytes(), DataTypeGzip},
	} {
		dt, err := DetectDataType(bytes.NewReader(v.Input))
		if err != nil {
			t.Fatal(err)
		}
		if dt != v.Type {
			t.Fatalf("%s: detected %d, expected %d", v.Name, dt, v.Type)
		}

		rc, err := MaybeDecompressReadCloser(bytes.NewReader(v.Input))
		if err != nil {
			t.Fatal(err)
		}

		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}

		if string(got) != payload {
			t.Fatalf("%s: got %q", v.Name, got)
		}
	}
}

func TestMaybeDecompressReadCloserUnixCompress(t *testing.T) {
	// Header of `compress` output: magic, then block mode with 16-bit codes.
	in := []byte{0x1f, 0x9d, 0x90, 0x43, 0x90, 0x20, 0x42}

	dt, err := DetectDataType(bytes.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeZ {
		t.Fatalf("detected %d, expected %d", dt, DataTypeZ)
	}

	if _, err := MaybeDecompressReadCloser(bytes.NewReader(in)); !errors.Is(err, ErrUnixCompress) {
		t.Fatalf("expected ErrUnixCompress, got %v", err)
	}
}

func TestDetectDataTypeShortInput(t *testing.T) {
	for _, in := range []string{"", "ab"} {
		dt, err := DetectDataType(strings.NewReader(in))
		if err != nil || dt != DataTypeNoCompression {
			t.Fatalf("%q: got %d, %v", in, dt, err)
		}
	}
}

func TestDetermineDelimiter(t *testing.T) {
	if d := DetermineDelimiter(strings.NewReader("")); d != ',' {
		t.Errorf("Expected ',' when nothing can be detected, got %q", d)
	}
}
