package plot

import (
	"fmt"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const (
	tolerance   = 1e-9
	minChildren = 4
	maxChildren = 16
	dimensions  = 2
)

// Kind of a recorded primitive
type Kind int

const (
	KindRect Kind = iota
	KindLine
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Item is a primitive drawn on a Recorder
type Item struct {
	Kind  Kind
	Bound orb.Bound

	// From and To are the line end points
	From, To orb.Point
	Text     string
	Fill     Fill
	Stroke   Stroke
	Font     Font
}

// spatialItem wraps an Item for R-Tree indexing
type spatialItem struct {
	idx  int
	rect rtreego.Rect
}

func (si *spatialItem) Bounds() rtreego.Rect {
	return si.rect
}

// Recorder is a Device that keeps every drawn primitive in memory and indexes
// their bounds so annotations can be looked up by area.
type Recorder struct {
	charWidth  float64
	charHeight float64

	mu    sync.RWMutex
	items []Item
	tree  *rtreego.Rtree
}

// NewRecorder creates a Recorder whose text metrics are a fixed character
// cell of charWidth x charHeight map units at scale 1.
func NewRecorder(charWidth, charHeight float64) *Recorder {
	return &Recorder{
		charWidth:  charWidth,
		charHeight: charHeight,
		tree:       rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

func (r *Recorder) Rect(b orb.Bound, f Fill) {
	r.add(Item{Kind: KindRect, Bound: b, Fill: f})
}

func (r *Recorder) Line(a, b orb.Point, s Stroke) {
	r.add(Item{
		Kind:   KindLine,
		Bound:  orb.Bound{Min: a, Max: a}.Extend(b),
		From:   a,
		To:     b,
		Stroke: s,
	})
}

func (r *Recorder) Text(p orb.Point, s string, f Font) {
	w, h := r.TextSize(s, f)
	r.add(Item{Kind: KindText, Bound: TextBound(p, w, h, f.Align), From: p, Text: s, Font: f})
}

func (r *Recorder) TextSize(s string, f Font) (float64, float64) {
	scale := f.Scale
	if scale <= 0 {
		scale = 1
	}
	return float64(len([]rune(s))) * r.charWidth * scale, r.charHeight * scale
}

func (r *Recorder) add(it Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, it)
	r.tree.Insert(&spatialItem{idx: len(r.items) - 1, rect: toRect(it.Bound)})
}

// Items returns the recorded primitives in drawing order
func (r *Recorder) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Filter returns the recorded primitives of one kind in drawing order
func (r *Recorder) Filter(k Kind) []Item {
	var out []Item
	for _, it := range r.Items() {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of recorded primitives
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Search returns the primitives whose bounds intersect b, in drawing order
func (r *Recorder) Search(b orb.Bound) []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := r.tree.SearchIntersect(toRect(b))
	hit := make([]bool, len(r.items))
	for _, res := range results {
		if si, ok := res.(*spatialItem); ok {
			hit[si.idx] = true
		}
	}

	var out []Item
	for i, ok := range hit {
		if ok {
			out = append(out, r.items[i])
		}
	}
	return out
}

// toRect converts a bound into an R-Tree rectangle; degenerate axes get a
// small positive length so points and axis-aligned lines stay searchable.
func toRect(b orb.Bound) rtreego.Rect {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w < tolerance {
		w = tolerance
	}
	if h < tolerance {
		h = tolerance
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	if err != nil {
		// lengths are positive, only NaN input ends up here
		return rtreego.Point{0, 0}.ToRect(tolerance)
	}
	return rect
}
