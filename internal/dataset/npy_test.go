// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// encodeNpy builds a version 1.0 .npy file the way numpy.save does.
func encodeNpy(t *testing.T, descr string, shape string, data any) []byte {
	t.Helper()
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, shape)
	pad := 64 - (len(npyMagic)+4+len(header)+1)%64
	header += strings.Repeat(" ", pad%64) + "\n"

	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)

	order := binary.ByteOrder(binary.LittleEndian)
	if strings.HasPrefix(descr, ">") {
		order = binary.BigEndian
	}
	if err := binary.Write(&buf, order, data); err != nil {
		t.Fatalf("binary.Write() error = %v", err)
	}
	return buf.Bytes()
}

func writeNpy(t *testing.T, dir string, raw []byte) string {
	t.Helper()
	path := filepath.Join(dir, "emb.npy")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDecodeNpy(t *testing.T) {
	tests := []struct {
		name  string
		descr string
		data  any
	}{
		{"float32 little endian", "<f4", []float32{1, 2, 3, 4, 5, 6}},
		{"float64 little endian", "<f8", []float64{1, 2, 3, 4, 5, 6}},
		{"float32 big endian", ">f4", []float32{1, 2, 3, 4, 5, 6}},
		{"int64", "<i8", []int64{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := encodeNpy(t, tt.descr, "(2, 3)", tt.data)
			m, err := DecodeNpy(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("DecodeNpy() error = %v", err)
			}
			if len(m) != 2 || len(m[0]) != 3 {
				t.Fatalf("shape = %dx%d, want 2x3", len(m), len(m[0]))
			}
			if m[0][0] != 1 || m[1][2] != 6 {
				t.Errorf("m = %v, want [[1 2 3] [4 5 6]]", m)
			}
		})
	}
}

func TestDecodeNpy_PreservesFloat32Values(t *testing.T) {
	v := float32(0.1)
	raw := encodeNpy(t, "<f4", "(1, 1)", []float32{v})
	m, err := DecodeNpy(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeNpy() error = %v", err)
	}
	if math.Float32bits(float32(m[0][0])) != math.Float32bits(v) {
		t.Errorf("m[0][0] = %v, want %v", m[0][0], v)
	}
}

func TestDecodeNpy_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  func(t *testing.T) []byte
	}{
		{"bad magic", func(t *testing.T) []byte { return []byte("NOTNUMPYFILE....") }},
		{"one dimensional", func(t *testing.T) []byte { return encodeNpy(t, "<f4", "(3,)", []float32{1, 2, 3}) }},
		{"unsupported dtype", func(t *testing.T) []byte { return encodeNpy(t, "<f2", "(1, 2)", []uint16{1, 2}) }},
		{"truncated data", func(t *testing.T) []byte {
			raw := encodeNpy(t, "<f4", "(2, 2)", []float32{1, 2, 3, 4})
			return raw[:len(raw)-4]
		}},
		{"fortran order", func(t *testing.T) []byte {
			raw := encodeNpy(t, "<f4", "(1, 1)", []float32{1})
			return bytes.Replace(raw, []byte("False"), []byte("True "), 1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeNpy(bytes.NewReader(tt.raw(t)))
			if !errors.Is(err, ErrNpyFormat) {
				t.Errorf("DecodeNpy() error = %v, want ErrNpyFormat", err)
			}
		})
	}
}

func TestReadNpy_File(t *testing.T) {
	path := writeNpy(t, t.TempDir(), encodeNpy(t, "<f4", "(3, 2)", []float32{1, 0, 0, 1, 1, 1}))
	m, err := ReadNpy(path)
	if err != nil {
		t.Fatalf("ReadNpy() error = %v", err)
	}
	if len(m) != 3 {
		t.Errorf("rows = %d, want 3", len(m))
	}

	if _, err := ReadNpy(filepath.Join(t.TempDir(), "missing.npy")); err == nil {
		t.Error("ReadNpy(missing) error = nil, want error")
	}
}
