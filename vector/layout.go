package vector

import (
	"math"

	"github.com/jonwraymond/ogimage/markup"
)

// box is a laid-out element or text run. Coordinates are relative to the
// parent's border box.
type box struct {
	node *markup.Node
	text string
	st   *computed
	kids []*box

	x, y, w, h float64
	lines      []textLine
}

func (b *box) isText() bool     { return b.node == nil }
func (b *box) absolute() bool   { return b.st.position == "absolute" }
func (b *box) column() bool     { return b.st.direction == "column" || b.st.direction == "column-reverse" }
func (b *box) reversed() bool   { return b.st.direction == "row-reverse" || b.st.direction == "column-reverse" }
func (b *box) hiddenOver() bool { return b.st.overflow == "hidden" }

// build converts a normalized markup tree into boxes with resolved styles.
// Elements with display none are dropped.
func build(n *markup.Node, parent *computed) *box {
	st := resolveStyle(parent, n.Style)
	if st.display == "none" {
		return nil
	}
	b := &box{node: n, st: st}
	for _, c := range n.Children {
		switch v := c.(type) {
		case *markup.Node:
			if kid := build(v, st); kid != nil {
				b.kids = append(b.kids, kid)
			}
		case markup.Text:
			text := transformText(string(v), st)
			if st.whiteSpace != "pre" {
				text = collapse(text)
			}
			if text != "" {
				b.kids = append(b.kids, &box{text: text, st: st.inherit()})
			}
		}
	}
	return b
}

type layouter struct {
	shaper *shaper
}

func (b *box) paddingPx(side int, ref float64) float64 {
	return b.st.padding[side].or(ref, 0)
}

func (b *box) marginPx(side int, ref float64) float64 {
	return b.st.margin[side].or(ref, 0)
}

// insets returns padding plus border on each axis.
func (b *box) insets(ref float64) (horiz, vert float64) {
	horiz = b.paddingPx(left, ref) + b.paddingPx(right, ref) + b.st.border[left].width + b.st.border[right].width
	vert = b.paddingPx(top, ref) + b.paddingPx(bottom, ref) + b.st.border[top].width + b.st.border[bottom].width
	return horiz, vert
}

func clampLen(v float64, minL, maxL length, ref float64) float64 {
	if mx, ok := maxL.resolve(ref); ok {
		v = math.Min(v, mx)
	}
	if mn, ok := minL.resolve(ref); ok {
		v = math.Max(v, mn)
	}
	return v
}

func (b *box) clampW(v, ref float64) float64 {
	return clampLen(v, b.st.minWidth, b.st.maxWidth, ref)
}

func (b *box) clampH(v, ref float64) float64 {
	return clampLen(v, b.st.minHeight, b.st.maxHeight, ref)
}

// definiteW returns the specified border-box width, if any.
func (b *box) definiteW(ref float64) (float64, bool) {
	w, ok := b.st.width.resolve(ref)
	if !ok {
		return 0, false
	}
	return b.clampW(w, ref), true
}

// definiteH returns the specified border-box height, if any.
func (b *box) definiteH(ref float64) (float64, bool) {
	h, ok := b.st.height.resolve(ref)
	if !ok {
		return 0, false
	}
	return b.clampH(h, ref), true
}

// intrinsic returns the min-content and max-content border-box widths.
func (l *layouter) intrinsic(b *box) (minW, maxW float64) {
	if b.isText() {
		return l.shaper.minContent(b.text, b.st), l.shaper.measure(b.text, b.st)
	}
	if w, ok := b.st.width.resolve(math.NaN()); ok {
		w = b.clampW(w, math.NaN())
		return w, w
	}
	if b.node.Kind == markup.KindImg {
		return 0, 0
	}

	gap := b.st.columnGap.or(math.NaN(), 0)
	n := 0
	for _, k := range b.kids {
		if k.absolute() {
			continue
		}
		kmin, kmax := l.intrinsic(k)
		m := k.marginPx(left, math.NaN()) + k.marginPx(right, math.NaN())
		if b.column() {
			minW = math.Max(minW, kmin+m)
			maxW = math.Max(maxW, kmax+m)
		} else {
			minW += kmin + m
			maxW += kmax + m
			if n > 0 {
				minW += gap
				maxW += gap
			}
		}
		n++
	}
	horiz, _ := b.insets(math.NaN())
	return b.clampW(minW+horiz, math.NaN()), b.clampW(maxW+horiz, math.NaN())
}

// layout sizes b to border-box width w and, when hDefinite, height h, then
// positions its descendants.
func (l *layouter) layout(b *box, w, h float64, hDefinite bool) {
	b.w = w
	if b.isText() {
		b.lines = l.shaper.wrap(b.text, b.st, w+0.5)
		if hDefinite {
			b.h = h
		} else {
			b.h = float64(len(b.lines)) * l.shaper.lineHeightPx(b.st)
		}
		return
	}

	horiz, vert := b.insets(w)
	cw := math.Max(0, w-horiz)
	ch := math.NaN()
	if hDefinite {
		ch = math.Max(0, h-vert)
	}

	var flow, abs []*box
	for _, k := range b.kids {
		if k.absolute() {
			abs = append(abs, k)
		} else {
			flow = append(flow, k)
		}
	}

	var contentH float64
	if b.column() {
		contentH = l.layoutColumn(b, flow, cw, ch)
	} else {
		contentH = l.layoutRow(b, flow, cw, ch)
	}

	if hDefinite {
		b.h = h
	} else {
		b.h = b.clampH(contentH+vert, math.NaN())
	}
	l.layoutAbsolute(b, abs)
}

// alignOf resolves the cross-axis alignment of kid inside b.
func alignOf(b, kid *box) string {
	if a := kid.st.alignSelf; a != "" && a != "auto" {
		return a
	}
	if b.st.alignItems != "" {
		return b.st.alignItems
	}
	return "stretch"
}

// item is the working state of one flow child along the main axis.
type item struct {
	b                   *box
	base, minMain, size float64
	cross               float64
	mStart, mEnd        float64 // main-axis margins
	cStart, cEnd        float64 // cross-axis margins
	autoStart, autoEnd  bool
	crossAutoStart      bool
	crossAutoEnd        bool
}

// resolveFlexible distributes free space among items.
func resolveFlexible(items []*item, avail float64, definite bool, gap float64) {
	used := gap * float64(max(len(items)-1, 0))
	for _, it := range items {
		used += it.base + it.mStart + it.mEnd
	}
	for _, it := range items {
		it.size = it.base
	}
	if !definite {
		for _, it := range items {
			it.size = math.Max(it.size, it.minMain)
		}
		return
	}

	free := avail - used
	switch {
	case free > 0:
		var grow float64
		for _, it := range items {
			grow += it.b.st.grow
		}
		if grow > 0 {
			for _, it := range items {
				it.size += free * it.b.st.grow / grow
			}
		}
	case free < 0:
		var scaled float64
		for _, it := range items {
			scaled += it.b.st.shrink * it.base
		}
		if scaled > 0 {
			for _, it := range items {
				it.size += free * it.b.st.shrink * it.base / scaled
			}
		}
	}
	for _, it := range items {
		it.size = math.Max(it.size, it.minMain)
	}
}

// placeMain positions items along the main axis and returns the used length.
func placeMain(items []*item, avail float64, definite bool, gap float64, justify string, reverse bool) []float64 {
	used := gap * float64(max(len(items)-1, 0))
	autos := 0
	for _, it := range items {
		used += it.size + it.mStart + it.mEnd
		if it.autoStart {
			autos++
		}
		if it.autoEnd {
			autos++
		}
	}
	free := 0.0
	if definite {
		free = avail - used
	}

	lead, between := 0.0, gap
	if free > 0 && autos > 0 {
		share := free / float64(autos)
		for _, it := range items {
			if it.autoStart {
				it.mStart += share
			}
			if it.autoEnd {
				it.mEnd += share
			}
		}
	} else if free > 0 {
		n := float64(len(items))
		switch justify {
		case "flex-end", "end":
			lead = free
		case "center":
			lead = free / 2
		case "space-between":
			if len(items) > 1 {
				between += free / (n - 1)
			}
		case "space-around":
			lead = free / n / 2
			between += free / n
		case "space-evenly":
			lead = free / (n + 1)
			between += free / (n + 1)
		}
	}
	if reverse && definite {
		// Reversed flows start at the far edge.
		lead = avail - used - lead
		if lead < 0 {
			lead = 0
		}
	}

	pos := make([]float64, len(items))
	order := make([]int, len(items))
	for i := range items {
		order[i] = i
		if reverse {
			order[i] = len(items) - 1 - i
		}
	}
	cursor := lead
	for _, i := range order {
		it := items[i]
		cursor += it.mStart
		pos[i] = cursor
		cursor += it.size + it.mEnd + between
	}
	return pos
}

// placeCross returns the offset of an item within a line of the given size.
func placeCross(it *item, lineSize float64, align string) float64 {
	outer := it.cross + it.cStart + it.cEnd
	free := lineSize - outer
	switch {
	case it.crossAutoStart && it.crossAutoEnd:
		return math.Max(free, 0)/2 + it.cStart
	case it.crossAutoStart:
		return math.Max(free, 0) + it.cStart
	case it.crossAutoEnd:
		return it.cStart
	}
	switch align {
	case "center":
		return free/2 + it.cStart
	case "flex-end", "end":
		return free + it.cStart
	}
	return it.cStart
}

func (l *layouter) layoutColumn(b *box, flow []*box, cw, ch float64) float64 {
	definite := !math.IsNaN(ch)
	gap := b.st.rowGap.or(ch, 0)
	offX := b.paddingPx(left, cw) + b.st.border[left].width
	offY := b.paddingPx(top, cw) + b.st.border[top].width

	items := make([]*item, len(flow))
	for i, k := range flow {
		it := &item{
			b:              k,
			mStart:         k.marginPx(top, cw),
			mEnd:           k.marginPx(bottom, cw),
			cStart:         k.marginPx(left, cw),
			cEnd:           k.marginPx(right, cw),
			autoStart:      k.st.margin[top].auto(),
			autoEnd:        k.st.margin[bottom].auto(),
			crossAutoStart: k.st.margin[left].auto(),
			crossAutoEnd:   k.st.margin[right].auto(),
		}
		items[i] = it

		// Cross size (width).
		avail := math.Max(0, cw-it.cStart-it.cEnd)
		switch dw, ok := k.definiteW(cw); {
		case ok:
			it.cross = dw
		case k.isText() || k.node.Kind != markup.KindImg:
			if alignOf(b, k) == "stretch" && !it.crossAutoStart && !it.crossAutoEnd {
				it.cross = k.clampW(avail, cw)
			} else {
				mn, mx := l.intrinsic(k)
				it.cross = k.clampW(math.Min(mx, math.Max(mn, avail)), cw)
			}
		}

		// Main size (height).
		dh, hasH := k.definiteH(ch)
		l.layout(k, it.cross, dh, hasH)
		content := k.h
		switch {
		case hasH:
			it.base = dh
		case k.st.basis.u == unitPx || (k.st.basis.u == unitPct && definite):
			it.base = k.st.basis.or(ch, content)
		default:
			it.base = content
		}
		switch {
		case k.st.minHeight.set():
			it.minMain = k.st.minHeight.or(ch, 0)
		case k.hiddenOver() || hasH:
			it.minMain = 0
		default:
			it.minMain = content
		}
	}

	resolveFlexible(items, ch, definite, gap)
	for _, it := range items {
		it.size = it.b.clampH(it.size, ch)
		if it.size != it.b.h {
			l.layout(it.b, it.cross, it.size, true)
		}
	}

	pos := placeMain(items, ch, definite, gap, b.st.justify, b.reversed())
	used := gap * float64(max(len(items)-1, 0))
	for i, it := range items {
		used += it.size + it.mStart + it.mEnd
		it.b.y = offY + pos[i]
		it.b.x = offX + placeCross(it, cw, alignOf(b, it.b))
	}
	return used
}

func (l *layouter) layoutRow(b *box, flow []*box, cw, ch float64) float64 {
	definite := !math.IsNaN(ch)
	gap := b.st.columnGap.or(cw, 0)
	offX := b.paddingPx(left, cw) + b.st.border[left].width
	offY := b.paddingPx(top, cw) + b.st.border[top].width

	items := make([]*item, len(flow))
	for i, k := range flow {
		it := &item{
			b:              k,
			mStart:         k.marginPx(left, cw),
			mEnd:           k.marginPx(right, cw),
			cStart:         k.marginPx(top, cw),
			cEnd:           k.marginPx(bottom, cw),
			autoStart:      k.st.margin[left].auto(),
			autoEnd:        k.st.margin[right].auto(),
			crossAutoStart: k.st.margin[top].auto(),
			crossAutoEnd:   k.st.margin[bottom].auto(),
		}
		items[i] = it

		mn, mx := l.intrinsic(k)
		dw, hasW := k.definiteW(cw)
		switch {
		case hasW:
			it.base = dw
		case k.st.basis.u == unitPx || k.st.basis.u == unitPct:
			it.base = k.st.basis.or(cw, mx)
		default:
			it.base = k.clampW(mx, cw)
		}
		switch {
		case k.st.minWidth.set():
			it.minMain = k.st.minWidth.or(cw, 0)
		case k.hiddenOver():
			it.minMain = 0
		case hasW:
			it.minMain = math.Min(mn, dw)
		default:
			it.minMain = mn
		}
	}

	resolveFlexible(items, cw, true, gap)

	// Cross sizes follow from the final widths.
	line := 0.0
	for _, it := range items {
		k := it.b
		it.size = k.clampW(it.size, cw)
		dh, hasH := k.definiteH(ch)
		l.layout(k, it.size, dh, hasH)
		it.cross = k.h
		line = math.Max(line, it.cross+it.cStart+it.cEnd)
	}
	if definite {
		line = ch
	}
	for _, it := range items {
		k := it.b
		if _, hasH := k.definiteH(ch); hasH {
			continue
		}
		if alignOf(b, k) == "stretch" && !it.crossAutoStart && !it.crossAutoEnd {
			stretched := k.clampH(line-it.cStart-it.cEnd, ch)
			if stretched > it.cross {
				l.layout(k, it.size, stretched, true)
				it.cross = stretched
			}
		}
	}

	pos := placeMain(items, cw, true, gap, b.st.justify, b.reversed())
	for i, it := range items {
		it.b.x = offX + pos[i]
		it.b.y = offY + placeCross(it, line, alignOf(b, it.b))
	}
	return line
}

// layoutAbsolute positions out-of-flow children against b's padding box.
func (l *layouter) layoutAbsolute(b *box, abs []*box) {
	bx, by := b.st.border[left].width, b.st.border[top].width
	cbW := b.w - bx - b.st.border[right].width
	cbH := b.h - by - b.st.border[bottom].width

	for _, k := range abs {
		in := k.st.inset
		lv, hasL := in[left].resolve(cbW)
		rv, hasR := in[right].resolve(cbW)
		tv, hasT := in[top].resolve(cbH)
		bv, hasB := in[bottom].resolve(cbH)
		ml, mr := k.marginPx(left, cbW), k.marginPx(right, cbW)
		mt, mb := k.marginPx(top, cbW), k.marginPx(bottom, cbW)

		w, hasW := k.definiteW(cbW)
		switch {
		case hasW:
		case hasL && hasR:
			w = k.clampW(cbW-lv-rv-ml-mr, cbW)
		default:
			mn, mx := l.intrinsic(k)
			avail := cbW - ml - mr
			if hasL {
				avail -= lv
			} else if hasR {
				avail -= rv
			}
			w = k.clampW(math.Min(mx, math.Max(mn, avail)), cbW)
		}

		h, hasH := k.definiteH(cbH)
		if !hasH && hasT && hasB {
			h, hasH = k.clampH(cbH-tv-bv-mt-mb, cbH), true
		}
		l.layout(k, w, h, hasH)

		switch {
		case hasL:
			k.x = bx + lv + ml
		case hasR:
			k.x = bx + cbW - rv - mr - k.w
		default:
			k.x = bx + b.paddingPx(left, cbW) + ml
		}
		switch {
		case hasT:
			k.y = by + tv + mt
		case hasB:
			k.y = by + cbH - bv - mb - k.h
		default:
			k.y = by + b.paddingPx(top, cbW) + mt
		}
	}
}
