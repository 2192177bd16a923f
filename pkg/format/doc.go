// Package format rewrites the whitespace between tokens of a syntax tree.
//
// Language rules describe what the layout should be through six kinds of
// operations: suppression spans, indentation blocks, anchors, alignment
// groups, and per token pair spacing and line-break requests. The engine
// applies them in a fixed order to an overlay of the tree's trivia and
// reports the result as disjoint text edits or as a rewritten tree. The
// original tree is never modified.
package format
