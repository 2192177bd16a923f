package format

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// minParallelItems is the smallest workload split across goroutines.
const minParallelItems = 256

// NodeOperations holds the node-level operations collected for one run.
type NodeOperations struct {
	Suppress     []*SuppressOperation
	IndentBlocks []*IndentBlockOperation
	Anchors      []*AnchorIndentationOperation
	Aligns       []*AlignTokensOperation
}

// pairOperations holds the spacing and line-break requests for one pair.
type pairOperations struct {
	pair   int
	spaces *AdjustSpacesOperation
	lines  *AdjustNewLinesOperation
}

// overlappingNodes lists, in pre-order, the nodes sharing at least one
// token with [first, last]. Nodes without tokens are kept so rules still see
// them; subtrees entirely outside the range are skipped.
func overlappingNodes(root *syntax.Node, first, last int) []*syntax.Node {
	var nodes []*syntax.Node
	var visit func(n *syntax.Node)
	visit = func(n *syntax.Node) {
		if !n.IsEmpty() && !n.Overlaps(first, last) {
			return
		}
		nodes = append(nodes, n)
		for child := n.FirstChild; child != nil; child = child.Next {
			visit(child)
		}
	}
	if root != nil {
		visit(root)
	}
	return nodes
}

// collectNodeOperations asks the chain for operations on every node
// overlapping the token range. With jobs > 1 the nodes are split into
// contiguous chunks and the per-chunk results concatenated in order, so the
// result matches a sequential walk.
func collectNodeOperations(ctx context.Context, chain *Chain, tree *syntax.Tree, first, last, jobs int) (*NodeOperations, error) {
	nodes := overlappingNodes(tree.Root, first, last)

	chunks := splitChunks(len(nodes), jobs)
	parts := make([]NodeOperations, len(chunks))

	if len(chunks) == 1 {
		if err := parts[0].collect(ctx, chain, nodes); err != nil {
			return nil, err
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(jobs)
		for idx, chunk := range chunks {
			group.Go(func() error {
				return parts[idx].collect(groupCtx, chain, nodes[chunk[0]:chunk[1]])
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	ops := &NodeOperations{}
	for _, part := range parts {
		ops.Suppress = append(ops.Suppress, part.Suppress...)
		ops.IndentBlocks = append(ops.IndentBlocks, part.IndentBlocks...)
		ops.Anchors = append(ops.Anchors, part.Anchors...)
		ops.Aligns = append(ops.Aligns, part.Aligns...)
	}
	ops.sort()
	return ops, nil
}

func (ops *NodeOperations) collect(ctx context.Context, chain *Chain, nodes []*syntax.Node) error {
	for _, node := range nodes {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		ops.Suppress = chain.SuppressOperations(ops.Suppress, node)
		ops.IndentBlocks = chain.IndentBlockOperations(ops.IndentBlocks, node)
		ops.Anchors = chain.AnchorIndentationOperations(ops.Anchors, node)
		ops.Aligns = chain.AlignTokensOperations(ops.Aligns, node)
	}
	return nil
}

// sort orders spans outer-first and alignment groups by base token. Sorts
// are stable so rule order breaks ties.
func (ops *NodeOperations) sort() {
	slices.SortStableFunc(ops.Suppress, func(a, b *SuppressOperation) int {
		return compareSpans(a.Start, a.End, b.Start, b.End)
	})
	slices.SortStableFunc(ops.IndentBlocks, func(a, b *IndentBlockOperation) int {
		return compareSpans(a.Start, a.End, b.Start, b.End)
	})
	slices.SortStableFunc(ops.Anchors, func(a, b *AnchorIndentationOperation) int {
		return compareSpans(a.Start, a.End, b.Start, b.End)
	})
	slices.SortStableFunc(ops.Aligns, func(a, b *AlignTokensOperation) int {
		return cmp.Compare(a.Base.Index, b.Base.Index)
	})
}

func compareSpans(aStart, aEnd, bStart, bEnd *syntax.Token) int {
	if c := cmp.Compare(aStart.Index, bStart.Index); c != 0 {
		return c
	}
	return cmp.Compare(bEnd.Index, aEnd.Index)
}

// collectPairOperations asks the chain for spacing and line-break requests
// on every adjacent pair of the stream.
func collectPairOperations(ctx context.Context, chain *Chain, stream *TokenStream, jobs int) ([]pairOperations, error) {
	pairs := make([]pairOperations, stream.Pairs())

	fill := func(ctx context.Context, from, to int) error {
		for pair := from; pair < to; pair++ {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			prev, cur := stream.Token(pair), stream.Token(pair+1)
			pairs[pair] = pairOperations{
				pair:   pair,
				spaces: chain.AdjustSpacesOperation(prev, cur),
				lines:  chain.AdjustNewLinesOperation(prev, cur),
			}
		}
		return nil
	}

	chunks := splitChunks(len(pairs), jobs)
	if len(chunks) == 1 {
		if err := fill(ctx, 0, len(pairs)); err != nil {
			return nil, err
		}
		return pairs, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for _, chunk := range chunks {
		group.Go(func() error {
			return fill(groupCtx, chunk[0], chunk[1])
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// splitChunks divides n items into at most jobs contiguous [from, to)
// ranges. Small workloads stay in one chunk.
func splitChunks(n, jobs int) [][2]int {
	if jobs <= 1 || n < minParallelItems {
		return [][2]int{{0, n}}
	}
	size := (n + jobs - 1) / jobs
	var chunks [][2]int
	for from := 0; from < n; from += size {
		chunks = append(chunks, [2]int{from, min(from+size, n)})
	}
	return chunks
}
