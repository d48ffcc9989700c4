// Package fingerprint computes stable content digests for parsed shifts.
// Two logically identical shifts always hash identically, so a stored
// digest match means the mirror and remote work for that key can be
// skipped entirely.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
)

// canonicalShift fixes the field set and order that participate in the
// digest. Struct field order drives json.Marshal output, so the encoding
// is deterministic.
type canonicalShift struct {
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	RawText   string  `json:"raw_text"`
	Category  string  `json:"category"`
	IsWorking bool    `json:"is_working"`
	Start     *string `json:"start"`
	End       *string `json:"end"`
}

// Sum returns the hex-encoded SHA-256 digest of the shift's semantic
// fields. Digest equality is treated as record equality.
func Sum(s rota.Shift) string {
	canonical := canonicalShift{
		Name:      s.Name,
		Date:      s.Date.Format("2006-01-02"),
		RawText:   s.RawText,
		Category:  string(s.Category),
		IsWorking: s.IsWorking,
		Start:     formatTime(s.Start),
		End:       formatTime(s.End),
	}

	// Marshal of a plain struct with string/bool/pointer fields cannot fail.
	data, _ := json.Marshal(canonical)
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}
