package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key hashes an ordered argument tuple into a deterministic cache key.
// json.Marshal gives a stable serialization (struct fields in declaration
// order, map keys sorted); the digest keeps keys short and uniform.
func Key(parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Unserializable parts (channels, funcs) are a programmer error;
		// fall back to the fmt rendering instead of panicking.
		data = []byte(fmt.Sprint(parts...))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
