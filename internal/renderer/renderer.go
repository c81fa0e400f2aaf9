// Package renderer paints sampled track states into preview frames.
//
// Units are drawn as placeholder boxes at their scene bounds, moved and
// faded by the sampled properties. Text shaping is out of scope: a glyph is
// a box, which is enough to judge timing.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/sitemotion/internal/geom"
	"github.com/ivlev/sitemotion/internal/system"
	"github.com/ivlev/sitemotion/internal/track"
)

var ErrUnknownParent = errors.New("unknown parent unit")

type Kind string

const (
	KindGlyph     Kind = "glyph"
	KindContainer Kind = "container" // invisible, only carries opacity for its children
	KindStrike    Kind = "strike"
	KindMask      Kind = "mask" // clips its children to a pie slice driven by Angle
	KindQR        Kind = "qr"
	KindBox       Kind = "box"
)

// Unit is the static description of something the renderer draws.
type Unit struct {
	ID         track.UnitID
	Kind       Kind
	Bounds     geom.Rect
	Parent     track.UnitID
	Color      string // hex, kind default when empty
	QR         string
	StartAngle float64 // mask only
}

var kindColors = map[Kind]string{
	KindGlyph:  "#1d1d1f",
	KindStrike: "#e4002b",
	KindMask:   "#ffd84a",
	KindBox:    "#8e8e93",
}

var background = gg.Hex("#f5f2eb")

type Renderer struct {
	width, height int
	units         []Unit
	index         map[track.UnitID]int
	children      map[track.UnitID][]int
	backdrop      *gg.ImageBuf
	qr            map[track.UnitID]*gg.ImageBuf
	pool          *system.PixmapPool
}

// New prepares a renderer. QR payloads are encoded once here and the
// backdrop, if any, is letterboxed to the frame size.
func New(width, height int, units []Unit, backdrop image.Image) (*Renderer, error) {
	r := &Renderer{
		width:    width,
		height:   height,
		units:    units,
		index:    make(map[track.UnitID]int, len(units)),
		children: make(map[track.UnitID][]int),
		qr:       make(map[track.UnitID]*gg.ImageBuf),
		pool:     system.NewPixmapPool(),
	}
	for i, u := range units {
		r.index[u.ID] = i
	}
	for i, u := range units {
		if u.Parent == "" {
			continue
		}
		if _, ok := r.index[u.Parent]; !ok {
			return nil, fmt.Errorf("%w: %s under %s", ErrUnknownParent, u.ID, u.Parent)
		}
		r.children[u.Parent] = append(r.children[u.Parent], i)
	}

	for _, u := range units {
		if u.Kind != KindQR {
			continue
		}
		q, err := qrcode.New(u.QR, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("qr %s: %w", u.ID, err)
		}
		q.DisableBorder = true
		size := int(min(u.Bounds.W, u.Bounds.H))
		r.qr[u.ID] = gg.ImageBufFromImage(q.Image(max(size, 21)))
	}

	if backdrop != nil {
		r.backdrop = gg.ImageBufFromImage(Letterbox(backdrop, width, height))
	}
	return r, nil
}

// Letterbox scales src to fit w×h keeping its aspect ratio and centres it
// on the page background.
func Letterbox(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), &image.Uniform{C: background.Color()}, image.Point{}, xdraw.Src)

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}
	scale := min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	fw, fh := int(float64(sb.Dx())*scale), int(float64(sb.Dy())*scale)
	x0, y0 := (w-fw)/2, (h-fh)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+fw, y0+fh), src, sb, xdraw.Over, nil)
	return dst
}

// Frame paints one frame for st.
func (r *Renderer) Frame(st track.State) (*image.RGBA, error) {
	pm := r.pool.Get(r.width, r.height)
	defer r.pool.Put(pm)

	dc := gg.NewContext(r.width, r.height, gg.WithPixmap(pm))
	defer dc.Close()

	dc.ClearWithColor(background)
	if r.backdrop != nil {
		dc.DrawImage(r.backdrop, 0, 0)
	}

	for i, u := range r.units {
		if u.Parent != "" && r.units[r.index[u.Parent]].Kind == KindMask {
			continue // painted inside the mask's clip
		}
		if err := r.paint(dc, i, st); err != nil {
			return nil, err
		}
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected frame type %T", dc.Image())
	}
	return img, nil
}

// opacity multiplies a unit's opacity with its ancestors'.
func (r *Renderer) opacity(u Unit, st track.State) float64 {
	o := st.Get(u.ID, track.Opacity)
	for depth := 0; u.Parent != "" && depth < len(r.units); depth++ {
		u = r.units[r.index[u.Parent]]
		o *= st.Get(u.ID, track.Opacity)
	}
	return o
}

// place returns the unit's box after the sampled offsets.
func place(u Unit, st track.State) (x, y, w, h float64) {
	b := u.Bounds
	scale := st.Get(u.ID, track.Scale)
	x = b.X + st.Get(u.ID, track.X) + st.Get(u.ID, track.XPercent)/100*b.W
	y = b.Y + st.Get(u.ID, track.Y) + st.Get(u.ID, track.YPercent)/100*b.H - st.Get(u.ID, track.Bottom)
	return x, y, b.W * scale * st.Get(u.ID, track.ScaleX), b.H * scale
}

func fill(u Unit) gg.RGBA {
	hex := u.Color
	if hex == "" {
		hex = kindColors[u.Kind]
	}
	if hex == "" {
		return gg.RGBA{}
	}
	return gg.Hex(hex)
}

func (r *Renderer) paint(dc *gg.Context, i int, st track.State) error {
	u := r.units[i]
	alpha := r.opacity(u, st)
	if alpha <= 0 {
		return nil
	}
	x, y, w, h := place(u, st)

	switch u.Kind {
	case KindContainer:
		return nil
	case KindQR:
		dc.DrawImageEx(r.qr[u.ID], gg.DrawImageOptions{
			X: x, Y: y, DstWidth: w, DstHeight: h,
			Interpolation: gg.InterpNearest,
			Opacity:       alpha,
			BlendMode:     gg.BlendNormal,
		})
		return nil
	case KindMask:
		return r.paintMask(dc, u, st, alpha)
	}

	c := fill(u)
	dc.SetRGBA(c.R, c.G, c.B, c.A*alpha)
	if u.Kind == KindStrike {
		dc.DrawRectangle(x, y, w, h)
	} else {
		dc.DrawRoundedRectangle(x, y, w, h, min(w, h)*0.15)
	}
	return dc.Fill()
}

func (r *Renderer) paintMask(dc *gg.Context, u Unit, st track.State, alpha float64) error {
	angle, ok := st[u.ID][track.Angle]
	if !ok || angle == u.StartAngle {
		return nil // nothing swept yet
	}
	frame := geom.BoundsFrame(u.Bounds, geom.WipePadding)
	slice := geom.PieSlice(frame.Center, frame.Radius, u.StartAngle, angle)

	dc.Push()
	defer dc.Pop()
	slice.Trace(dc)
	dc.Clip()

	c := fill(u)
	dc.SetRGBA(c.R, c.G, c.B, c.A*alpha)
	dc.DrawRectangle(u.Bounds.X, u.Bounds.Y, u.Bounds.W, u.Bounds.H)
	if err := dc.Fill(); err != nil {
		return err
	}
	for _, ci := range r.children[u.ID] {
		if err := r.paint(dc, ci, st); err != nil {
			return err
		}
	}
	return nil
}
