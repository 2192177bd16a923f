package format

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// Engine formats trees with a fixed rule chain and options. An Engine is
// safe for concurrent use; every call works on its own state.
type Engine struct {
	chain *Chain
	opts  *Options
	jobs  int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithJobs lets operation collection and the spacing pass use up to n
// goroutines. Values below 2 keep the run on the calling goroutine.
func WithJobs(n int) EngineOption {
	return func(e *Engine) {
		e.jobs = n
	}
}

// NewEngine creates an engine for the rules, in chain order.
func NewEngine(rules []Rule, opts Options, engineOpts ...EngineOption) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	engine := &Engine{
		chain: NewChain(rules),
		opts:  Intern(opts),
		jobs:  1,
	}
	for _, opt := range engineOpts {
		opt(engine)
	}
	return engine, nil
}

// Options returns the engine's interned options.
func (e *Engine) Options() *Options {
	return e.opts
}

// Format formats the whole tree.
func (e *Engine) Format(ctx context.Context, tree *syntax.Tree) (*Result, error) {
	if tree == nil {
		panic("format: nil tree")
	}
	return e.FormatRange(ctx, tree, tree.Tokens[0], tree.EOF())
}

// FormatSpan formats the tokens whose surrounding trivia intersects the
// byte range [start, end).
func (e *Engine) FormatSpan(ctx context.Context, tree *syntax.Tree, start, end int) (*Result, error) {
	if tree == nil {
		panic("format: nil tree")
	}
	if start < 0 || end > tree.Len() || start > end {
		return nil, fmt.Errorf("%w: byte range [%d, %d) outside [0, %d)", ErrInvalidRange, start, end, tree.Len())
	}
	first, last := tree.TokensCovering(start, end)
	return e.FormatRange(ctx, tree, tree.Tokens[first], tree.Tokens[last])
}

// FormatRange formats the separators between start and end (inclusive),
// including the tree boundaries when the range reaches them. On
// cancellation it returns an error wrapping ErrCancelled and no result.
func (e *Engine) FormatRange(ctx context.Context, tree *syntax.Tree, start, end *syntax.Token) (*Result, error) {
	if tree == nil {
		panic("format: nil tree")
	}
	if !ownsToken(tree, start) || !ownsToken(tree, end) || start.Index > end.Index {
		return nil, ErrInvalidRange
	}

	began := time.Now()
	logger := logging.FromContext(ctx)

	data := NewTreeData(tree)
	factory := NewTriviaDataFactory(*e.opts)
	stream := NewTokenStream(tree, data, factory, start.Index, end.Index)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	nodeOps, err := collectNodeOperations(ctx, e.chain, tree, start.Index, end.Index, e.jobs)
	if err != nil {
		return nil, err
	}
	pairOps, err := collectPairOperations(ctx, e.chain, stream, e.jobs)
	if err != nil {
		return nil, err
	}

	fc := newFormattingContext(e.opts, stream, nodeOps)
	apply := newApplier(fc, stream, logger)

	logger.Debug("formatting",
		logging.FieldPath, tree.Path,
		logging.FieldTokens, stream.Len(),
		logging.FieldPairs, stream.Pairs())

	// The phases run in this order and each completes before the next.
	moved := make(movedTokens)
	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"spacing", func(ctx context.Context) error { return e.applySpacing(ctx, apply, fc, pairOps) }},
		{"anchors", func(ctx context.Context) error { return e.applyAnchors(ctx, apply, pairOps, moved) }},
		{"alignment", func(ctx context.Context) error { return e.applyAlignment(ctx, apply, nodeOps, moved) }},
		{"leftover", func(ctx context.Context) error { return e.applyLeftover(ctx, apply, stream) }},
		{"boundaries", func(ctx context.Context) error { return e.applyBoundaries(ctx, apply, stream) }},
	}
	for _, phase := range phases {
		phaseStart := time.Now()
		if err := phase.run(ctx); err != nil {
			return nil, err
		}
		logger.Debug("phase complete",
			logging.FieldPhase, phase.name,
			logging.FieldChanges, stream.ChangeCount(),
			logging.FieldElapsed, time.Since(phaseStart))
	}

	result := newResult(tree, data, stream.Changes(), Stats{
		Tokens:   stream.Len(),
		Pairs:    stream.Pairs(),
		Rejected: int(apply.rejected.Load()),
	})
	result.stats.Elapsed = time.Since(began)

	logger.Debug("formatted",
		logging.FieldPath, tree.Path,
		logging.FieldChanges, len(result.TextChanges()),
		logging.FieldRejected, result.stats.Rejected,
		logging.FieldElapsed, result.stats.Elapsed)

	return result, nil
}

// applySpacing is phase one. Pairs whose outcome reads token columns run
// sequentially in source order after the independent pairs, which may run
// in parallel.
func (e *Engine) applySpacing(ctx context.Context, apply *applier, fc *FormattingContext, pairs []pairOperations) error {
	var independent, dependent []pairOperations
	for _, ops := range pairs {
		if ops.lines == nil && ops.spaces == nil {
			continue
		}
		_, after := apply.stream.PairTokens(ops.pair)
		if (ops.lines != nil && fc.DependsOnColumns(after)) ||
			(ops.spaces != nil && ops.spaces.Option == SpaceDynamicToIndentation) {
			dependent = append(dependent, ops)
			continue
		}
		independent = append(independent, ops)
	}

	run := func(ctx context.Context, list []pairOperations) error {
		for _, ops := range list {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			apply.applyPair(ops)
		}
		return nil
	}

	chunks := splitChunks(len(independent), e.jobs)
	if len(chunks) == 1 {
		if err := run(ctx, independent); err != nil {
			return err
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(e.jobs)
		for _, chunk := range chunks {
			group.Go(func() error {
				return run(groupCtx, independent[chunk[0]:chunk[1]])
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}
	}

	return run(ctx, dependent)
}

// applyAnchors moves anchored tokens, then cascades into relative blocks.
func (e *Engine) applyAnchors(ctx context.Context, apply *applier, pairs []pairOperations, moved movedTokens) error {
	for _, ops := range pairs {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		if apply.frozenSpacing(ops.pair) || !apply.isAnchorCandidate(ops) {
			continue
		}
		apply.applyAnchor(ops.pair, moved)
	}
	apply.cascadeRelativeBlocks(moved)
	return nil
}

// applyAlignment lines up alignment groups in base token order, then
// cascades into relative blocks.
func (e *Engine) applyAlignment(ctx context.Context, apply *applier, nodeOps *NodeOperations, moved movedTokens) error {
	for _, op := range nodeOps.Aligns {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		apply.applyAlignment(op, moved)
	}
	apply.cascadeRelativeBlocks(moved)

	return nil
}

func (e *Engine) applyLeftover(ctx context.Context, apply *applier, stream *TokenStream) error {
	for pair := range stream.Pairs() {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		if apply.skip(pair) {
			continue
		}
		apply.formatLeftover(pair)
	}
	return nil
}

func (e *Engine) applyBoundaries(ctx context.Context, apply *applier, stream *TokenStream) error {
	if err := checkCancelled(ctx); err != nil {
		return err
	}
	if stream.IsFirstTokenInTree() {
		apply.formatBeginningOfTree()
	}
	if stream.IsLastTokenInTree() {
		apply.formatEndOfTree()
	}
	return nil
}

func ownsToken(tree *syntax.Tree, tok *syntax.Token) bool {
	return tok != nil && tok.Index >= 0 && tok.Index < len(tree.Tokens) && tree.Tokens[tok.Index] == tok
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
