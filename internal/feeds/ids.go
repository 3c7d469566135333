package feeds

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// base36, matching the suffix alphabet of legacy links.
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const idSuffixLen = 9

// SynthesizeID mints a "<prefix>-<timestamp>-<randomSuffix>" record id for
// sources that provide no stable id of their own. Such ids change on every
// fetch, which is why adapters prefer the source's own id whenever one is
// present: match-scoped deep links only survive a refresh with stable ids.
func SynthesizeID(prefix string) string {
	var sb strings.Builder
	for i := 0; i < idSuffixLen; i++ {
		sb.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), sb.String())
}

// StableID builds "<prefix>-<id>" when the source supplied an id, and falls
// back to a synthesized one otherwise.
func StableID(prefix string, id FlexID) string {
	if id != "" {
		return prefix + "-" + string(id)
	}
	return SynthesizeID(prefix)
}
