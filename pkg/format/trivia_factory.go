package format

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Shape cache bounds.
const (
	cachedSpaces      = 10
	cachedLineBreaks  = 5
	cachedIndentLevel = 20
)

// shapeCache holds shared canonical whitespace values for one options value.
type shapeCache struct {
	spaces [cachedSpaces]*Whitespace
	lines  [cachedLineBreaks][cachedIndentLevel + 1]*Whitespace
}

//nolint:gochecknoglobals // process-wide, append-only cache keyed by interned options
var (
	shapeCaches   sync.Map // *Options -> *shapeCache
	shapeCachesMu sync.Mutex
	lastShapes    atomic.Pointer[shapeEntry]
)

type shapeEntry struct {
	opts  *Options
	cache *shapeCache
}

// shapesFor returns the cache for opts, building it on first use. The most
// recently used entry is checked before the map.
func shapesFor(factory *TriviaDataFactory) *shapeCache {
	opts := factory.opts
	if last := lastShapes.Load(); last != nil && last.opts == opts {
		return last.cache
	}

	cached, ok := shapeCaches.Load(opts)
	if !ok {
		shapeCachesMu.Lock()
		cached, ok = shapeCaches.Load(opts)
		if !ok {
			cached = buildShapeCache(factory)
			shapeCaches.Store(opts, cached)
		}
		shapeCachesMu.Unlock()
	}

	cache := cached.(*shapeCache)
	lastShapes.Store(&shapeEntry{opts: opts, cache: cache})
	return cache
}

func buildShapeCache(factory *TriviaDataFactory) *shapeCache {
	// Cached values must not point back at a single run's factory.
	shared := &TriviaDataFactory{opts: factory.opts}
	cache := &shapeCache{}
	for space := range cachedSpaces {
		cache.spaces[space] = shared.render(0, space)
	}
	for line := range cachedLineBreaks {
		for level := range cachedIndentLevel + 1 {
			cache.lines[line][level] = shared.render(line+1, level*factory.opts.IndentSize)
		}
	}
	return cache
}

// TriviaDataFactory analyzes trivia between tokens into TriviaData values.
type TriviaDataFactory struct {
	opts *Options
}

// NewTriviaDataFactory creates a factory for the given options. Factories
// built from equal options share one shape cache.
func NewTriviaDataFactory(opts Options) *TriviaDataFactory {
	return &TriviaDataFactory{opts: Intern(opts)}
}

// Options returns the factory's options.
func (f *TriviaDataFactory) Options() *Options {
	return f.opts
}

// Create analyzes the trivia between two adjacent tokens.
func (f *TriviaDataFactory) Create(a, b *syntax.Token) TriviaData {
	pieces := make([]syntax.Trivia, 0, len(a.Trailing)+len(b.Leading))
	pieces = append(pieces, a.Trailing...)
	pieces = append(pieces, b.Leading...)
	return f.analyze(pieces)
}

// CreateLeading analyzes the trivia before the first token of a tree.
func (f *TriviaDataFactory) CreateLeading(tok *syntax.Token) TriviaData {
	return f.analyze(tok.Leading)
}

// CreateTrailing analyzes the trivia after the last token of a tree.
func (f *TriviaDataFactory) CreateTrailing(tok *syntax.Token) TriviaData {
	return f.analyze(tok.Trailing)
}

func (f *TriviaDataFactory) analyze(pieces []syntax.Trivia) TriviaData {
	if hasNoise(pieces) {
		return newComplexTrivia(f, pieces)
	}

	text := syntax.TriviaText(pieces)
	elastic := isElastic(pieces)

	lines := countLineBreaks(text)
	spaces := advanceColumn(0, text, f.opts.TabSize)

	if !elastic && text == f.renderText(lines, spaces) {
		return f.whitespace(lines, spaces)
	}
	return &Whitespace{
		factory: f,
		lines:   lines,
		spaces:  spaces,
		elastic: elastic,
		text:    text,
	}
}

// whitespace returns a canonical value, shared when the shape is cached.
func (f *TriviaDataFactory) whitespace(lines, spaces int) *Whitespace {
	if lines < 0 {
		lines = 0
	}
	if spaces < 0 {
		spaces = 0
	}

	switch {
	case lines == 0 && spaces < cachedSpaces:
		return shapesFor(f).spaces[spaces]
	case lines > 0 && lines <= cachedLineBreaks && spaces%f.opts.IndentSize == 0 &&
		spaces/f.opts.IndentSize <= cachedIndentLevel:
		return shapesFor(f).lines[lines-1][spaces/f.opts.IndentSize]
	}
	return f.render(lines, spaces)
}

func (f *TriviaDataFactory) render(lines, spaces int) *Whitespace {
	return &Whitespace{
		factory:   f,
		lines:     lines,
		spaces:    spaces,
		text:      f.renderText(lines, spaces),
		canonical: true,
	}
}

func (f *TriviaDataFactory) renderText(lines, spaces int) string {
	if lines == 0 {
		return strings.Repeat(" ", spaces)
	}
	return strings.Repeat(f.opts.NewLine, lines) + f.opts.IndentString(spaces)
}

func (f *TriviaDataFactory) renderPieces(lines, spaces int) []syntax.Trivia {
	pieces := make([]syntax.Trivia, 0, lines+1)
	for range lines {
		pieces = append(pieces, syntax.EndOfLine(f.opts.NewLine))
	}
	switch {
	case lines == 0 && spaces > 0:
		pieces = append(pieces, syntax.Whitespace(strings.Repeat(" ", spaces)))
	case lines > 0 && spaces > 0:
		pieces = append(pieces, syntax.Whitespace(f.opts.IndentString(spaces)))
	}
	return pieces
}
