package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Encode writes d as a version 2 TZif file: a minimal version 1 header and
// data block for compliance with readers that only understand version 1,
// then the 64-bit data block and footer. It is primarily used to
// construct zone files in tests and tooling.
func (d Data) Encode(w io.Writer) error {
	version := d.Version
	if version == V1 {
		version = V2
	}

	// Readers reject files whose version 1 block has no time types, so
	// carry a single placeholder type and designation.
	v1 := header{
		Version: version,
		Typecnt: 1,
		Charcnt: 1,
	}
	if err := writeHeader(w, v1); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := writeBinary(w, LocalType{}); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return fmt.Errorf("write v1 designations: %w", err)
	}

	v2 := header{
		Version: version,
		Timecnt: uint32(len(d.TransitionTimes)),
		Typecnt: uint32(len(d.Types)),
		Charcnt: uint32(len(d.Designations)),
	}
	if err := writeHeader(w, v2); err != nil {
		return fmt.Errorf("write v2 header: %w", err)
	}
	if err := writeBinary(w, d.TransitionTimes); err != nil {
		return fmt.Errorf("write transition times: %w", err)
	}
	if err := writeBinary(w, d.TransitionTypes); err != nil {
		return fmt.Errorf("write transition types: %w", err)
	}
	for _, t := range d.Types {
		if err := writeBinary(w, t); err != nil {
			return fmt.Errorf("write local time type record: %w", err)
		}
	}
	if _, err := w.Write(d.Designations); err != nil {
		return fmt.Errorf("write designations: %w", err)
	}

	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if _, err := io.WriteString(w, d.TZString); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeHeader(w io.Writer, h header) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return writeBinary(w, h)
}

func writeBinary(w io.Writer, v any) error {
	return binary.Write(w, order, v)
}
