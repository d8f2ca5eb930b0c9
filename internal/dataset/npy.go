// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrNpyFormat is returned for files that are not a supported .npy matrix.
var ErrNpyFormat = errors.New("unsupported npy file")

var npyMagic = []byte("\x93NUMPY")

var (
	npyDescrRe   = regexp.MustCompile(`'descr':\s*'([<>|=]?)([fi])(\d)'`)
	npyFortranRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// npyHeader is the parsed header of a 2-D .npy array.
type npyHeader struct {
	order binary.ByteOrder
	kind  byte // 'f' or 'i'
	size  int  // bytes per element
	rows  int
	cols  int
}

// ReadNpy reads a 2-D float32 or float64 C-order matrix written by
// numpy.save. Integer matrices of 4 or 8 bytes are accepted and converted.
func ReadNpy(path string) ([][]float64, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	m, err := DecodeNpy(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// DecodeNpy decodes a .npy stream. See ReadNpy.
func DecodeNpy(r io.Reader) ([][]float64, error) {
	h, err := readNpyHeader(r)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, h.rows)
	buf := make([]byte, h.cols*h.size)
	for i := range out {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: row %d of %d: %v", ErrNpyFormat, i, h.rows, err)
		}
		row := make([]float64, h.cols)
		for j := range row {
			row[j] = h.decode(buf[j*h.size : (j+1)*h.size])
		}
		out[i] = row
	}
	return out, nil
}

func (h *npyHeader) decode(b []byte) float64 {
	switch {
	case h.kind == 'f' && h.size == 4:
		return float64(math.Float32frombits(h.order.Uint32(b)))
	case h.kind == 'f' && h.size == 8:
		return math.Float64frombits(h.order.Uint64(b))
	case h.kind == 'i' && h.size == 4:
		return float64(int32(h.order.Uint32(b))) //nolint:gosec // reinterpretation of a signed value
	default:
		return float64(int64(h.order.Uint64(b))) //nolint:gosec // reinterpretation of a signed value
	}
}

func readNpyHeader(r io.Reader) (*npyHeader, error) {
	prefix := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrNpyFormat, err)
	}
	if string(prefix[:len(npyMagic)]) != string(npyMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrNpyFormat)
	}

	var headerLen int
	switch major := prefix[len(npyMagic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: header length: %v", ErrNpyFormat, err)
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: header length: %v", ErrNpyFormat, err)
		}
		headerLen = int(n)
	default:
		return nil, fmt.Errorf("%w: version %d", ErrNpyFormat, major)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrNpyFormat, err)
	}
	return parseNpyHeader(string(raw))
}

func parseNpyHeader(s string) (*npyHeader, error) {
	h := &npyHeader{order: binary.LittleEndian}

	m := npyDescrRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: dtype in %q", ErrNpyFormat, s)
	}
	if m[1] == ">" {
		h.order = binary.BigEndian
	}
	h.kind = m[2][0]
	h.size, _ = strconv.Atoi(m[3])
	if h.size != 4 && h.size != 8 {
		return nil, fmt.Errorf("%w: element size %d", ErrNpyFormat, h.size)
	}

	if m := npyFortranRe.FindStringSubmatch(s); m == nil || m[1] == "True" {
		return nil, fmt.Errorf("%w: only C-order arrays are supported", ErrNpyFormat)
	}

	m = npyShapeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: shape in %q", ErrNpyFormat, s)
	}
	var dims []int
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: shape %q", ErrNpyFormat, m[1])
		}
		dims = append(dims, d)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: want a 2-D matrix, got shape (%s)", ErrNpyFormat, m[1])
	}
	h.rows, h.cols = dims[0], dims[1]
	return h, nil
}
