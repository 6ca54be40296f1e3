// Package fwpool provides pooled scratch buffers for the fixed-width reads
// the fundamental codecs perform on every decode call.
//
// Decoding a stream of telemetry records means decoding thousands of 1/2/4/8
// byte fundamentals in a tight loop; allocating a fresh []byte for each one
// would dominate the cost of the decode. fwpool reuses a small set of
// scratch buffers, one per width, across codec calls.
package fwpool

import "sync"

// widths handled by the fundamental codecs.
const (
	Width1 = 1
	Width2 = 2
	Width4 = 4
	Width8 = 8
)

// ScratchPool hands out fixed-size []byte scratch buffers for encoding
// fundamentals, avoiding an allocation per Encode call.
type ScratchPool struct {
	pools map[int]*sync.Pool
}

// NewScratchPool creates a pool pre-wired for the four fundamental widths.
func NewScratchPool() *ScratchPool {
	p := &ScratchPool{pools: make(map[int]*sync.Pool, 4)}
	for _, width := range []int{Width1, Width2, Width4, Width8} {
		w := width
		p.pools[w] = &sync.Pool{
			New: func() any {
				b := make([]byte, w)
				return &b
			},
		}
	}

	return p
}

// Get returns a scratch buffer of exactly width bytes. The contents are
// unspecified; callers must overwrite every byte before reading it back out.
func (p *ScratchPool) Get(width int) []byte {
	pool, ok := p.pools[width]
	if !ok {
		b := make([]byte, width)
		return b
	}

	bp := pool.Get().(*[]byte)

	return *bp
}

// Put returns a scratch buffer obtained from Get back to the pool.
func (p *ScratchPool) Put(buf []byte) {
	pool, ok := p.pools[len(buf)]
	if !ok {
		return
	}

	pool.Put(&buf)
}

// Default is the package-level pool shared by the built-in fundamental
// codecs, mirroring the teacher's package-level default buffer pools.
var Default = NewScratchPool()
