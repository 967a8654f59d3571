package reveal

import (
	"encoding/hex"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces keyframe identifiers.
type IDGenerator interface {
	NextID() string
}

// RandomIDs draws 8 hex characters from a random UUID. Collisions are
// possible but unlikely within one document.
type RandomIDs struct{}

func (RandomIDs) NextID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}

// SequentialIDs hands out base36 counter values, unique for the lifetime of
// the generator. Output is reproducible for a fresh generator.
type SequentialIDs struct {
	n atomic.Uint64
}

func (s *SequentialIDs) NextID() string {
	return strconv.FormatUint(s.n.Add(1), 36)
}
