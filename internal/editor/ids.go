package editor

import "math/rand"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 6
)

// generateID draws six-character codes uniformly from [A-Z0-9] until it
// finds one the taken predicate does not claim.
func generateID(r *rand.Rand, taken func(string) bool) string {
	buf := make([]byte, idLength)
	for {
		for i := range buf {
			buf[i] = idAlphabet[r.Intn(len(idAlphabet))]
		}
		id := string(buf)
		if !taken(id) {
			return id
		}
	}
}
