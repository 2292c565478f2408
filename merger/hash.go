package merger

import (
	"github.com/minio/highwayhash"
)

// digestKey is the fixed 32 byte highwayhash key
var digestKey = []byte("projmerge/merger digest key v1.0")

// Digest returns a 64-bit highwayhash of data
func Digest(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(digestKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
