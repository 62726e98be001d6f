// Package txhash derives a local transaction identity: a blake2b-256
// digest of a deterministic binary image of the transaction body.
//
// The image is serialized with cramberry, so the same body always
// produces the same bytes. Witnesses are not part of the image. The
// digest is stable for this module but is not the node's molecule
// hash; code that must agree with a node supplies its own
// types.TxHasher.
package txhash

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"golang.org/x/crypto/blake2b"

	"github.com/blockberries/ckb/types"
)

// Personalization is written ahead of every image so that these
// digests never collide with digests of other data.
const Personalization = "ckb-default-hash"

// Hasher implements types.TxHasher.
type Hasher struct{}

var _ types.TxHasher = Hasher{}

// TransactionHash returns the digest of tx's image.
func (Hasher) TransactionHash(tx types.RawTransaction) (types.Hash, error) {
	image, err := Image(tx)
	if err != nil {
		return types.Hash{}, err
	}
	return Sum(image), nil
}

// Sum is the personalized blake2b-256 of data.
func Sum(data []byte) types.Hash {
	buf := make([]byte, 0, len(Personalization)+len(data))
	buf = append(buf, Personalization...)
	buf = append(buf, data...)
	return types.Hash(blake2b.Sum256(buf))
}

// Image returns the canonical binary form of tx.
func Image(tx types.RawTransaction) ([]byte, error) {
	img, err := newRawTransactionImage(tx)
	if err != nil {
		return nil, err
	}
	data, err := cramberry.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

// Seal builds the Transaction for raw using Hasher.
func Seal(raw types.RawTransaction) (types.Transaction, error) {
	return types.NewTransaction(raw, Hasher{})
}
