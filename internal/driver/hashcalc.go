package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"turbalance/internal/checker"
)

// Digest identifies a cached check result.
type Digest [32]byte

// rule switches packed into one byte; appending a switch changes every key
const (
	optWordBoundary byte = 1 << iota
	optFuncParens
)

func optionBits(opts checker.Options) byte {
	var b byte
	if opts.WordBoundary {
		b |= optWordBoundary
	}
	if opts.FuncParens {
		b |= optFuncParens
	}
	return b
}

// CacheKey: H(schema || options || content hash).
func CacheKey(content [32]byte, opts checker.Options) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write([]byte{optionBits(opts)})
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
