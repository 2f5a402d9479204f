package fingerprint

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Digest is an io.Writer that hashes with BLAKE2b-256 and counts bytes.
type Digest struct {
	h    hash.Hash
	size int64
}

func New() *Digest {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return &Digest{h: h}
}

func (d *Digest) Write(p []byte) (int, error) {
	n, err := d.h.Write(p)
	d.size += int64(n)
	return n, err
}

func (d *Digest) Size() int64 {
	return d.size
}

// Hex returns the digest of everything written so far.
func (d *Digest) Hex() string {
	return hex.EncodeToString(d.h.Sum(nil))
}
