package fonts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestGoFontProvider(t *testing.T) {
	table, err := NewGoFontProvider().Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("Load() returned %d fonts, want 5", len(table))
	}
	for _, f := range table {
		if f.Face == nil {
			t.Errorf("%s %d %s: Face is nil", f.Name, f.Weight, f.Style)
		}
		if f.Name != GoFontName {
			t.Errorf("Name = %q, want %q", f.Name, GoFontName)
		}
	}
}

func writeFontDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDirProvider_LoadsDefaultSpecsInOrder(t *testing.T) {
	dir := writeFontDir(t, map[string][]byte{
		"Inter-Regular.ttf":  goregular.TTF,
		"Inter-SemiBold.ttf": gobold.TTF,
		"Inter-Bold.ttf":     gobold.TTF,
	})

	table, err := NewDirProvider(DirConfig{Dir: dir}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	wantWeights := []int{400, 600, 700}
	if len(table) != len(wantWeights) {
		t.Fatalf("got %d fonts, want %d", len(table), len(wantWeights))
	}
	for i, f := range table {
		if f.Name != "Inter" || f.Weight != wantWeights[i] || f.Style != StyleNormal {
			t.Errorf("font %d = %s/%d/%s", i, f.Name, f.Weight, f.Style)
		}
		if f.Face == nil {
			t.Errorf("font %d not parsed", i)
		}
	}
}

func TestDirProvider_MissingFile(t *testing.T) {
	dir := writeFontDir(t, map[string][]byte{"Inter-Regular.ttf": goregular.TTF})

	_, err := NewDirProvider(DirConfig{Dir: dir}).Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestDirProvider_InvalidData(t *testing.T) {
	dir := writeFontDir(t, map[string][]byte{"broken.ttf": []byte("definitely not a font")})

	p := NewDirProvider(DirConfig{Dir: dir, Specs: []Spec{{Name: "Broken", File: "broken.ttf", Weight: 400}}})
	if _, err := p.Load(context.Background()); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("Load() error = %v, want ErrInvalidFont", err)
	}
}

func TestNewDirProvider_Defaults(t *testing.T) {
	p := NewDirProvider(DirConfig{})
	if p.config.Dir != DefaultDir {
		t.Errorf("Dir = %q, want %q", p.config.Dir, DefaultDir)
	}
	if len(p.config.Specs) != len(DefaultSpecs) {
		t.Errorf("Specs = %v, want defaults", p.config.Specs)
	}
}

func TestCached_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	inner := ProviderFunc(func(ctx context.Context) ([]Font, error) {
		calls.Add(1)
		return NewGoFontProvider().Load(ctx)
	})
	c := NewCached(inner)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Load(context.Background()); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("underlying Load called %d times, want 1", n)
	}
	if !c.Loaded() {
		t.Error("Loaded() = false after Load")
	}

	c.Reset()
	_, _ = c.Load(context.Background())
	if n := calls.Load(); n != 2 {
		t.Errorf("after Reset, underlying Load called %d times, want 2", n)
	}
}

func TestCached_EmptyTableIsAnError(t *testing.T) {
	c := NewCached(ProviderFunc(func(context.Context) ([]Font, error) { return nil, nil }))
	if _, err := c.Load(context.Background()); !errors.Is(err, ErrNoFonts) {
		t.Errorf("Load() error = %v, want ErrNoFonts", err)
	}
}

func TestMatch(t *testing.T) {
	table := []Font{
		{Name: "A", Weight: 400, Style: StyleNormal},
		{Name: "B", Weight: 600, Style: StyleNormal},
		{Name: "C", Weight: 700, Style: StyleNormal},
		{Name: "D", Weight: 400, Style: StyleItalic},
	}

	tests := []struct {
		weight int
		style  string
		want   string
	}{
		{400, StyleNormal, "A"},
		{700, StyleNormal, "C"},
		{800, StyleNormal, "C"},
		{300, StyleNormal, "A"},
		{500, StyleNormal, "B"},
		{400, StyleItalic, "D"},
		{700, StyleItalic, "D"},
	}
	for _, tt := range tests {
		got, ok := Match(table, tt.weight, tt.style)
		if !ok || got.Name != tt.want {
			t.Errorf("Match(%d, %s) = %s, want %s", tt.weight, tt.style, got.Name, tt.want)
		}
	}

	if _, ok := Match(nil, 400, StyleNormal); ok {
		t.Error("Match on empty table should fail")
	}
}
