package effects

import (
	"fmt"

	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/track"
)

// HelloScatter is how far below its baseline each "say hello" letter starts.
var HelloScatter = []float64{240, 1600, 1300, 820, 1280, 2080, 220, 890}

const helloOpacity = 0.6

// SayHello returns the convergence mapper of every letter.
func SayHello(letters []track.UnitID, scatter []float64) (map[track.UnitID]scroll.Mapper, error) {
	if len(scatter) == 0 {
		scatter = HelloScatter
	}
	out := make(map[track.UnitID]scroll.Mapper, len(letters))
	for i, u := range letters {
		c, err := scroll.NewConvergence(scatter[i%len(scatter)], 0, helloOpacity, "power2.out")
		if err != nil {
			return nil, fmt.Errorf("letter %s: %w", u, err)
		}
		out[u] = c
	}
	return out, nil
}
