// Package ident derives wallpaper identifiers.
//
// An id is "<seq>-<suffix>": seq is a process-wide counter that only moves
// forward and suffix is the first 8 hex digits of a random UUID. Every
// candidate is checked against the ids already taken and regenerated on a
// clash, so uniqueness does not depend on clock resolution or luck.
package ident

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var seq atomic.Uint64

// Generator hands out ids. The zero value is ready to use.
type Generator struct {
	mu sync.Mutex

	// Random returns the random part of an id. Nil uses a UUIDv4 prefix.
	Random func() string
}

func (g *Generator) random() string {
	if g.Random != nil {
		return g.Random()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Next returns one id not present in taken. taken is not modified.
func (g *Generator) Next(taken map[string]struct{}) string {
	ids := g.Reserve(1, taken)
	return ids[0]
}

// Reserve returns n ids that are pairwise distinct and absent from taken.
func (g *Generator) Reserve(n int, taken map[string]struct{}) []string {
	if n <= 0 {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	issued := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		id := strconv.FormatUint(seq.Add(1), 10) + "-" + g.random()
		if _, clash := taken[id]; clash {
			continue
		}
		if _, clash := issued[id]; clash {
			continue
		}
		issued[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
