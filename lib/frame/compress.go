// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// errIncompressible means the compressed body would not be smaller than
// the payload. Pack falls back to None.
var errIncompressible = errors.New("frame: payload is incompressible")

// zstd.Encoder and zstd.Decoder are safe for concurrent use, so one of
// each serves every call.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("frame: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(MaxPayload),
	)
	if err != nil {
		panic("frame: zstd decoder initialization failed: " + err.Error())
	}
}

func compress(payload []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return payload, nil
	case LZ4:
		return compressLZ4(payload)
	case Zstd:
		return compressZstd(payload)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(compression))
	}
}

func decompress(body []byte, compression Compression, size int) ([]byte, error) {
	switch compression {
	case None:
		if len(body) != size {
			return nil, fmt.Errorf("%w: body is %d bytes, header says %d", ErrSizeMismatch, len(body), size)
		}
		return body, nil
	case LZ4:
		return decompressLZ4(body, size)
	case Zstd:
		return decompressZstd(body, size)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(compression))
	}
}

func compressLZ4(payload []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(payload)))
	written, err := lz4.CompressBlock(payload, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(payload) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(body []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(body, destination)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", ErrSizeMismatch, err)
	}
	if read != size {
		return nil, fmt.Errorf("%w: lz4 produced %d bytes, header says %d", ErrSizeMismatch, read, size)
	}
	return destination, nil
}

func compressZstd(payload []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(payload, nil)
	if len(compressed) >= len(payload) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(body []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(body, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("%w: zstd produced %d bytes, header says %d", ErrSizeMismatch, len(result), size)
	}
	return result, nil
}
