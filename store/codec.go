package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-magspec/labeled"
)

// ErrCorrupt reports a record that cannot be decoded.
var ErrCorrupt = errors.New("store: corrupt record")

const (
	recordMagic   = "MSPC"
	recordVersion = 1
)

type header struct {
	Axes  []labeled.Axis `json:"axes"`
	Attrs labeled.Attrs  `json:"attrs"`
}

// Encode serializes a into the uncompressed record layout:
// magic, version byte, header length, JSON header, little-endian float64 data.
func Encode(a *labeled.Array[float64]) ([]byte, error) {
	hdr, err := json.Marshal(header{Axes: a.Axes, Attrs: a.Attrs})
	if err != nil {
		return nil, fmt.Errorf("store: encode header: %w", err)
	}

	buf := new(bytes.Buffer)
	buf.Grow(len(recordMagic) + 1 + 4 + len(hdr) + 8*len(a.Data))
	buf.WriteString(recordMagic)
	buf.WriteByte(recordVersion)
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(hdr))); err != nil {
		return nil, err
	}
	buf.Write(hdr)

	var word [8]byte
	for _, v := range a.Data {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		buf.Write(word[:])
	}
	return buf.Bytes(), nil
}

// Decode parses a record produced by Encode.
func Decode(data []byte) (*labeled.Array[float64], error) {
	prefix := len(recordMagic) + 1 + 4
	if len(data) < prefix || string(data[:len(recordMagic)]) != recordMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := data[len(recordMagic)]; v != recordVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}
	hdrLen := int(binary.LittleEndian.Uint32(data[len(recordMagic)+1 : prefix]))
	if len(data) < prefix+hdrLen {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}

	var hdr header
	if err := json.Unmarshal(data[prefix:prefix+hdrLen], &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	payload := data[prefix+hdrLen:]
	if len(payload)%8 != 0 {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrCorrupt, len(payload))
	}
	values := make([]float64, len(payload)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
	}

	a, err := labeled.FromData(values, hdr.Axes, hdr.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return a, nil
}
