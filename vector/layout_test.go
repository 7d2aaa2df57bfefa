package vector

import (
	"math"
	"testing"

	"github.com/jonwraymond/ogimage/markup"
)

func layoutTree(t *testing.T, root *markup.Node, w, h float64) *box {
	t.Helper()
	tree := build(markup.Normalize(root), rootStyle())
	l := &layouter{shaper: &shaper{table: goFonts(t)}}
	l.layout(tree, w, h, true)
	return tree
}

type rect struct{ x, y, w, h float64 }

func checkRect(t *testing.T, name string, b *box, want rect) {
	t.Helper()
	got := rect{b.x, b.y, b.w, b.h}
	const eps = 0.01
	if math.Abs(got.x-want.x) > eps || math.Abs(got.y-want.y) > eps ||
		math.Abs(got.w-want.w) > eps || math.Abs(got.h-want.h) > eps {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func TestLayout_RowGrowAndStretch(t *testing.T) {
	root := markup.Div(nil,
		markup.Div(markup.Style{"flexGrow": 1}),
		markup.Div(markup.Style{"flexGrow": 1}),
	)
	tree := layoutTree(t, root, 1200, 630)
	checkRect(t, "root", tree, rect{0, 0, 1200, 630})
	checkRect(t, "first", tree.kids[0], rect{0, 0, 600, 630})
	checkRect(t, "second", tree.kids[1], rect{600, 0, 600, 630})
}

func TestLayout_GrowRatio(t *testing.T) {
	root := markup.Div(markup.Style{"gap": 30},
		markup.Div(markup.Style{"flex": 1}),
		markup.Div(markup.Style{"flex": 2}),
	)
	tree := layoutTree(t, root, 930, 100)
	checkRect(t, "first", tree.kids[0], rect{0, 0, 300, 100})
	checkRect(t, "second", tree.kids[1], rect{330, 0, 600, 100})
}

func TestLayout_ColumnCentered(t *testing.T) {
	root := markup.Div(markup.Style{
		"flexDirection":  "column",
		"justifyContent": "center",
		"alignItems":     "center",
	},
		markup.Div(markup.Style{"width": 200, "height": 100}),
	)
	tree := layoutTree(t, root, 1200, 630)
	checkRect(t, "child", tree.kids[0], rect{500, 265, 200, 100})
}

func TestLayout_PaddingAndColumnStretch(t *testing.T) {
	root := markup.Div(markup.Style{"flexDirection": "column", "padding": 60, "gap": 10},
		markup.Div(markup.Style{"height": 40}),
		markup.Div(markup.Style{"height": 20, "marginTop": 5}),
	)
	tree := layoutTree(t, root, 1200, 630)
	checkRect(t, "first", tree.kids[0], rect{60, 60, 1080, 40})
	checkRect(t, "second", tree.kids[1], rect{60, 115, 1080, 20})
}

func TestLayout_ColumnFlexFill(t *testing.T) {
	root := markup.Div(markup.Style{"flexDirection": "column"},
		markup.Div(markup.Style{"height": 100}),
		markup.Div(markup.Style{"flex": 1}),
	)
	tree := layoutTree(t, root, 800, 600)
	checkRect(t, "filler", tree.kids[1], rect{0, 100, 800, 500})
}

func TestLayout_Justify(t *testing.T) {
	tests := []struct {
		justify string
		want    []float64
	}{
		{"flex-start", []float64{0, 100, 200}},
		{"flex-end", []float64{900, 1000, 1100}},
		{"center", []float64{450, 550, 650}},
		{"space-between", []float64{0, 550, 1100}},
		{"space-around", []float64{150, 550, 950}},
		{"space-evenly", []float64{225, 550, 875}},
	}
	for _, tt := range tests {
		t.Run(tt.justify, func(t *testing.T) {
			root := markup.Div(markup.Style{"justifyContent": tt.justify},
				markup.Div(markup.Style{"width": 100}),
				markup.Div(markup.Style{"width": 100}),
				markup.Div(markup.Style{"width": 100}),
			)
			tree := layoutTree(t, root, 1200, 100)
			for i, want := range tt.want {
				if got := tree.kids[i].x; math.Abs(got-want) > 0.01 {
					t.Errorf("child %d x = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestLayout_RowReverse(t *testing.T) {
	root := markup.Div(markup.Style{"flexDirection": "row-reverse"},
		markup.Div(markup.Style{"width": 100}),
		markup.Div(markup.Style{"width": 200}),
	)
	tree := layoutTree(t, root, 1000, 50)
	if got := tree.kids[0].x; got != 900 {
		t.Errorf("first x = %v, want 900", got)
	}
	if got := tree.kids[1].x; got != 700 {
		t.Errorf("second x = %v, want 700", got)
	}
}

func TestLayout_AutoMarginPushesToEnd(t *testing.T) {
	root := markup.Div(nil,
		markup.Div(markup.Style{"width": 100}),
		markup.Div(markup.Style{"width": 100, "marginLeft": "auto"}),
	)
	tree := layoutTree(t, root, 1000, 50)
	if got := tree.kids[1].x; got != 900 {
		t.Errorf("x = %v, want 900", got)
	}
}

func TestLayout_Shrink(t *testing.T) {
	root := markup.Div(nil,
		markup.Div(markup.Style{"width": 600, "overflow": "hidden"}),
		markup.Div(markup.Style{"width": 600, "overflow": "hidden"}),
	)
	tree := layoutTree(t, root, 1000, 50)
	checkRect(t, "first", tree.kids[0], rect{0, 0, 500, 50})
	checkRect(t, "second", tree.kids[1], rect{500, 0, 500, 50})
}

func TestLayout_Absolute(t *testing.T) {
	root := markup.Div(markup.Style{"padding": 40},
		markup.Div(markup.Style{"position": "absolute", "top": 10, "right": 20, "width": 100, "height": 50}),
		markup.Div(markup.Style{"position": "absolute", "inset": 0}),
		markup.Div(markup.Style{"position": "absolute", "left": "50%", "bottom": 0, "width": 10, "height": 10}),
	)
	tree := layoutTree(t, root, 1200, 630)
	checkRect(t, "corner", tree.kids[0], rect{1080, 10, 100, 50})
	checkRect(t, "overlay", tree.kids[1], rect{0, 0, 1200, 630})
	checkRect(t, "pinned", tree.kids[2], rect{600, 620, 10, 10})
}

func TestLayout_DisplayNone(t *testing.T) {
	root := markup.Div(nil,
		markup.Div(markup.Style{"display": "none", "width": 100}),
		markup.Div(markup.Style{"width": 100}),
	)
	tree := layoutTree(t, root, 500, 50)
	if len(tree.kids) != 1 {
		t.Fatalf("kids = %d, want 1", len(tree.kids))
	}
	if tree.kids[0].x != 0 {
		t.Errorf("x = %v, want 0", tree.kids[0].x)
	}
}

func TestLayout_TextWrapsToColumnWidth(t *testing.T) {
	root := markup.Div(nil,
		markup.Div(markup.Style{"flexDirection": "column", "width": 300},
			markup.Div(markup.Style{"fontSize": 32, "lineHeight": 1.25},
				markup.Text("the quick brown fox jumps over the lazy dog"),
			),
		),
	)
	tree := layoutTree(t, root, 1200, 630)
	inner := tree.kids[0].kids[0]
	text := inner.kids[0]
	if !text.isText() {
		t.Fatal("expected a text box")
	}
	if len(text.lines) < 2 {
		t.Fatalf("lines = %d, want wrapping", len(text.lines))
	}
	for _, line := range text.lines {
		if line.width > 301 {
			t.Errorf("line %q is %v wide", line.text, line.width)
		}
	}
	if want := float64(len(text.lines)) * 40; math.Abs(text.h-want) > 0.01 {
		t.Errorf("text height = %v, want %v", text.h, want)
	}
	if got := inner.h; math.Abs(got-text.h) > 0.01 {
		t.Errorf("container height = %v, want %v", got, text.h)
	}
}

func TestLayout_RowSizesToText(t *testing.T) {
	root := markup.Div(markup.Style{"alignItems": "flex-start"},
		markup.Span(markup.Style{"fontSize": 20}, markup.Text("Hi")),
	)
	tree := layoutTree(t, root, 1200, 630)
	span := tree.kids[0]
	sh := &shaper{table: goFonts(t)}
	if want := sh.measure("Hi", span.kids[0].st); math.Abs(span.w-want) > 0.01 {
		t.Errorf("span width = %v, want %v", span.w, want)
	}
}
