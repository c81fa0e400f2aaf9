package system

import (
	"image"
	"sync"

	"github.com/gogpu/gg"
)

// PixmapPool recycles gg pixmaps between frames so the preview pipeline
// does not allocate a full canvas per frame.
type PixmapPool struct {
	pools map[image.Point]*sync.Pool
	mu    sync.RWMutex
}

func NewPixmapPool() *PixmapPool {
	return &PixmapPool{pools: make(map[image.Point]*sync.Pool)}
}

// Get returns a cleared pixmap of the given size.
func (p *PixmapPool) Get(w, h int) *gg.Pixmap {
	key := image.Pt(w, h)
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() any { return gg.NewPixmap(w, h) },
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	pm := pool.Get().(*gg.Pixmap)
	pm.Clear(gg.Transparent)
	return pm
}

// Put hands pm back. Pixmaps of a size never requested are dropped.
func (p *PixmapPool) Put(pm *gg.Pixmap) {
	if pm == nil {
		return
	}
	key := image.Pt(pm.Width(), pm.Height())
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(pm)
	}
}
