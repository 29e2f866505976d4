package promotion

import (
	"crypto/md5"
	"encoding/hex"
)

// Signature is the promotion unit: a short, deterministic fingerprint of
// a task's category and description prefix. Two task instances generated
// from the same template collapse to the same signature.
type Signature string

// sign implements spec.md §4.6's signature function: category + ":" +
// the 8-hex-digit MD5 prefix of the first 100 characters of description.
// Grounded verbatim on promotion_pipeline.py's _task_signature.
func sign(category, description string) Signature {
	prefix := description
	if len(prefix) > 100 {
		prefix = prefix[:100]
	}
	sum := md5.Sum([]byte(prefix))
	return Signature(category + ":" + hex.EncodeToString(sum[:])[:8])
}
