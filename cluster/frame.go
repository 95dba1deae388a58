package cluster

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/vispipe/errors"
	"github.com/pierrec/lz4"
)

const frameMagic uint32 = 0x56495350 // "VISP"

const frameHeaderSize = 24

// frame is one message between ranks
type frame struct {
	source int
	tag    int
	values []float64
}

// encodeFrame serializes a frame as a fixed header followed by an lz4 stream of the
// little-endian values. The header carries the xxhash of the uncompressed payload.
func encodeFrame(f *frame) ([]byte, error) {
	raw := make([]byte, 8*len(f.values))
	for i, v := range f.values {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	buf := bytes.NewBuffer(make([]byte, frameHeaderSize, frameHeaderSize+len(raw)/2))
	header := buf.Bytes()
	binary.LittleEndian.PutUint32(header[0:], frameMagic)
	binary.LittleEndian.PutUint32(header[4:], uint32(int32(f.source)))
	binary.LittleEndian.PutUint32(header[8:], uint32(int32(f.tag)))
	binary.LittleEndian.PutUint32(header[12:], uint32(len(f.values)))
	binary.LittleEndian.PutUint64(header[16:], xxhash.Sum64(raw))
	compressor := lz4.NewWriter(buf)
	if _, err := compressor.Write(raw); err != nil {
		return nil, err
	}
	if err := compressor.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeFrame parses a frame produced by encodeFrame, verifying its checksum
func decodeFrame(b []byte) (*frame, error) {
	if len(b) < frameHeaderSize || binary.LittleEndian.Uint32(b[0:]) != frameMagic {
		return nil, errors.TransportError{Rank: -1, Peer: -1, Reason: "malformed frame header"}
	}
	f := &frame{
		source: int(int32(binary.LittleEndian.Uint32(b[4:]))),
		tag:    int(int32(binary.LittleEndian.Uint32(b[8:]))),
	}
	count := int(binary.LittleEndian.Uint32(b[12:]))
	checksum := binary.LittleEndian.Uint64(b[16:])
	raw, err := ioutil.ReadAll(lz4.NewReader(bytes.NewReader(b[frameHeaderSize:])))
	if err != nil {
		return nil, errors.TransportError{Rank: -1, Peer: f.source, Tag: f.tag, Reason: "unable to decompress payload: " + err.Error()}
	}
	if len(raw) != 8*count {
		return nil, errors.TransportError{Rank: -1, Peer: f.source, Tag: f.tag, Reason: "payload length does not match header"}
	}
	if xxhash.Sum64(raw) != checksum {
		return nil, errors.TransportError{Rank: -1, Peer: f.source, Tag: f.tag, Reason: "payload checksum mismatch"}
	}
	f.values = make([]float64, count)
	for i := range f.values {
		f.values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return f, nil
}
