// Package tzif reads and writes TZif files according to RFC 8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// The package exposes a single merged view of a zone file: whichever data
// block the file version mandates is decoded into Data, with 32-bit
// version 1 transition times widened to 64 bits. Leap-second records are
// parsed past but not retained; the resolution engine ignores leap
// seconds, as the civil time scale does.
package tzif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// All multi-octet values are stored in network octet order (big-endian)
// per RFC 8536.
var order = binary.BigEndian

// Magic is the four-octet sequence identifying a TZif file.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Version identifies the version of a TZif file. V1 files carry 32-bit
// transition times; V2 and later carry an additional 64-bit data block and
// a footer, which take precedence.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = '2'
	V3 Version = '3'
	V4 Version = '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2, V3, V4:
		return fmt.Sprintf("V%c", byte(v))
	default:
		return fmt.Sprintf("<undefined version (%d)>", byte(v))
	}
}

// header is the fixed-size on-disk header that follows the magic.
type header struct {
	Version  Version
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

// LocalType is a local time type record: the offset from UT in effect
// while the type applies, whether it is daylight-saving time, and the
// index of its designation string.
type LocalType struct {
	OffsetSeconds    int32
	DST              bool
	DesignationIndex uint8
}

// Data is the decoded content of a TZif file.
type Data struct {
	Version Version

	// TransitionTimes holds the Unix times at which the rules for
	// computing local time change, strictly ascending. TransitionTypes
	// holds, per transition, the index into Types of the local time type
	// that applies from that transition on.
	TransitionTimes []int64
	TransitionTypes []uint8

	// Types holds the local time type records; at least one is present
	// in a valid file.
	Types []LocalType

	// Designations is the NUL-terminated designation string pool indexed
	// by LocalType.DesignationIndex.
	Designations []byte

	// TZString is the footer rule for computing local time changes after
	// the last transition; empty for V1 files or when the information is
	// not available.
	TZString string
}

// Designation returns the NUL-terminated designation string starting at
// index i of the pool.
func (d Data) Designation(i uint8) string {
	pool := d.Designations
	if int(i) >= len(pool) {
		return ""
	}
	pool = pool[i:]
	if end := bytes.IndexByte(pool, 0); end >= 0 {
		pool = pool[:end]
	}
	return string(pool)
}

// Decode reads a TZif file. For version 2 and later files the 64-bit data
// block and footer are returned; the mandatory version 1 block is decoded
// and discarded.
func Decode(r io.Reader) (Data, error) {
	h, err := readHeader(r)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 header: %w", err)
	}

	d, err := readDataBlock(r, h, 4)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 data block: %w", err)
	}
	d.Version = h.Version
	if h.Version == V1 {
		return d, d.validate(h)
	}

	h2, err := readHeader(r)
	if err != nil {
		return Data{}, fmt.Errorf("read v2 header: %w", err)
	}
	if h2.Version != h.Version {
		return Data{}, fmt.Errorf("inconsistent version: v1 header = %v, v2 header = %v", h.Version, h2.Version)
	}
	d, err = readDataBlock(r, h2, 8)
	if err != nil {
		return Data{}, fmt.Errorf("read v2 data block: %w", err)
	}
	d.Version = h.Version

	d.TZString, err = readFooter(r)
	if err != nil {
		return Data{}, fmt.Errorf("read footer: %w", err)
	}
	return d, d.validate(h2)
}

func readHeader(r io.Reader) (header, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return header{}, fmt.Errorf("reading magic: %w", err)
	}
	if magic != Magic {
		return header{}, fmt.Errorf("invalid magic: %v", magic)
	}
	var h header
	if err := binary.Read(r, order, &h); err != nil {
		return header{}, err
	}
	switch h.Version {
	case V1, V2, V3, V4:
		return h, nil
	default:
		return header{}, fmt.Errorf("unsupported version: %v", h.Version)
	}
}

// readDataBlock decodes one data block. timeSize is 4 for the version 1
// block and 8 for version 2 and later.
func readDataBlock(r io.Reader, h header, timeSize int) (Data, error) {
	var d Data

	if h.Timecnt > 0 {
		d.TransitionTimes = make([]int64, h.Timecnt)
		if timeSize == 4 {
			narrow := make([]int32, h.Timecnt)
			if err := binary.Read(r, order, &narrow); err != nil {
				return d, fmt.Errorf("reading transition times: %w", err)
			}
			for i, t := range narrow {
				d.TransitionTimes[i] = int64(t)
			}
		} else {
			if err := binary.Read(r, order, &d.TransitionTimes); err != nil {
				return d, fmt.Errorf("reading transition times: %w", err)
			}
		}

		d.TransitionTypes = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, &d.TransitionTypes); err != nil {
			return d, fmt.Errorf("reading transition types: %w", err)
		}
	}

	if h.Typecnt > 0 {
		d.Types = make([]LocalType, h.Typecnt)
		for i := range d.Types {
			if err := binary.Read(r, order, &d.Types[i]); err != nil {
				return d, fmt.Errorf("reading local time type record: %w", err)
			}
		}
	}

	if h.Charcnt > 0 {
		d.Designations = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, d.Designations); err != nil {
			return d, fmt.Errorf("reading designations: %w", err)
		}
	}

	// Leap-second records, standard/wall and UT/local indicators are
	// irrelevant to offset resolution; consume and drop them.
	skip := int64(h.Leapcnt)*int64(timeSize+4) + int64(h.Isstdcnt) + int64(h.Isutcnt)
	if skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return d, fmt.Errorf("skipping trailing records: %w", err)
		}
	}
	return d, nil
}

var asciiNewLine = byte(0x0A)

func readFooter(r io.Reader) (string, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("reading newline: %w", err)
	}
	if buf[0] != asciiNewLine {
		return "", fmt.Errorf("expected newline, got %v", buf[0])
	}
	var b []byte
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("reading TZ string: %w", err)
		}
		if buf[0] == asciiNewLine {
			return string(b), nil
		}
		b = append(b, buf[0])
	}
}

// validate checks the decoded data against the RFC 8536 consistency
// rules that matter for lookup: counts, ordering and index bounds.
func (d Data) validate(h header) error {
	var errs []error
	if len(d.TransitionTimes) != len(d.TransitionTypes) {
		errs = append(errs, fmt.Errorf("inconsistent transitions: %d times, %d types",
			len(d.TransitionTimes), len(d.TransitionTypes)))
	}
	for i := 1; i < len(d.TransitionTimes); i++ {
		if d.TransitionTimes[i] <= d.TransitionTimes[i-1] {
			errs = append(errs, fmt.Errorf("transition times not strictly ascending at index %d", i))
			break
		}
	}
	if len(d.Types) == 0 {
		errs = append(errs, errors.New("typecnt must not be zero"))
	}
	for i, ti := range d.TransitionTypes {
		if int(ti) >= len(d.Types) {
			errs = append(errs, fmt.Errorf("transition type %d out of range at index %d", ti, i))
			break
		}
	}
	if h.Charcnt == 0 {
		errs = append(errs, errors.New("charcnt must not be zero"))
	} else if n := len(d.Designations); n == 0 || d.Designations[n-1] != 0 {
		errs = append(errs, errors.New("designations missing null terminator"))
	}
	return errors.Join(errs...)
}
