package assemble

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/universal"
)

// InputHash digests everything assembly depends on: the staged bundle, the
// universal set and the effective options. Equal hashes guarantee equal
// output, which makes the hash usable as a cache key.
func InputHash(bundle staging.TheoryBundle, set universal.Set, opts Options) string {
	h := sha256.New()
	for _, part := range []any{bundle, set, opts} {
		// Marshal cannot fail on these plain data types.
		data, _ := json.Marshal(part)
		h.Write(data)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
