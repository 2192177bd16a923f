package format

import "github.com/yaklabco/wsfmt/pkg/syntax"

// Rule is a formatting rule. A rule takes part in an extension point by
// implementing the matching optional interface below; rules that implement
// none of them are inert.
//
// Each hook receives a next function that runs the rest of the chain. A
// rule may call it first and then amend the result, call it last, or not
// call it at all to hide what later rules would contribute.
type Rule interface {
	Name() string
}

// NextSuppress runs the remainder of the suppress chain.
type NextSuppress func(list []*SuppressOperation) []*SuppressOperation

// NextIndentBlock runs the remainder of the indent block chain.
type NextIndentBlock func(list []*IndentBlockOperation) []*IndentBlockOperation

// NextAnchorIndentation runs the remainder of the anchor chain.
type NextAnchorIndentation func(list []*AnchorIndentationOperation) []*AnchorIndentationOperation

// NextAlignTokens runs the remainder of the alignment chain.
type NextAlignTokens func(list []*AlignTokensOperation) []*AlignTokensOperation

// NextAdjustSpaces runs the remainder of the spacing chain.
type NextAdjustSpaces func() *AdjustSpacesOperation

// NextAdjustNewLines runs the remainder of the line-break chain.
type NextAdjustNewLines func() *AdjustNewLinesOperation

// SuppressRule contributes suppression spans for a node.
type SuppressRule interface {
	AddSuppressOperations(list []*SuppressOperation, node *syntax.Node, next NextSuppress) []*SuppressOperation
}

// IndentBlockRule contributes indentation blocks for a node.
type IndentBlockRule interface {
	AddIndentBlockOperations(list []*IndentBlockOperation, node *syntax.Node, next NextIndentBlock) []*IndentBlockOperation
}

// AnchorIndentationRule contributes anchors for a node.
type AnchorIndentationRule interface {
	AddAnchorIndentationOperations(list []*AnchorIndentationOperation, node *syntax.Node, next NextAnchorIndentation) []*AnchorIndentationOperation
}

// AlignTokensRule contributes alignment groups for a node.
type AlignTokensRule interface {
	AddAlignTokensOperations(list []*AlignTokensOperation, node *syntax.Node, next NextAlignTokens) []*AlignTokensOperation
}

// AdjustSpacesRule decides spacing between two adjacent tokens.
type AdjustSpacesRule interface {
	AdjustSpacesOperation(prev, cur *syntax.Token, next NextAdjustSpaces) *AdjustSpacesOperation
}

// AdjustNewLinesRule decides line breaks between two adjacent tokens.
type AdjustNewLinesRule interface {
	AdjustNewLinesOperation(prev, cur *syntax.Token, next NextAdjustNewLines) *AdjustNewLinesOperation
}
