package audit

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hasher pseudonymizes identifiers before they are stored.
type Hasher interface {
	Hash(data string) string
}

type keyedHasher struct {
	key []byte
}

// NewKeyedHasher returns a BLAKE2b-256 MAC keyed with key. The same user
// always maps to the same digest, so events stay correlatable, but the id
// cannot be recovered without the key. The key must be 16 to 64 bytes.
func NewKeyedHasher(key []byte) (Hasher, error) {
	if len(key) < 16 || len(key) > blake2b.Size {
		return nil, ErrInvalidHashKey
	}
	return &keyedHasher{key: append([]byte(nil), key...)}, nil
}

func (h *keyedHasher) Hash(data string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// Key length was checked by NewKeyedHasher.
		panic(err)
	}
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
