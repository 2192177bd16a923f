package syntax

// NodeKind classifies a node. Language packages define their own kinds;
// NodeRoot is reserved for the tree root.
type NodeKind uint16

// NodeRoot is the kind of every tree's root node.
const NodeRoot NodeKind = 0

// Node is an interior node of the syntax tree. Nodes do not own text; they
// reference an inclusive range of token indices.
type Node struct {
	// Kind classifies the node.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Token span (indices into Tree.Tokens).
	// Both are -1 for nodes that cover no tokens.
	FirstToken int
	LastToken  int

	// Tree is a back-reference to the containing tree.
	Tree *Tree
}

// NewNode creates a detached node with an empty token range.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:       kind,
		FirstToken: -1,
		LastToken:  -1,
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// IsEmpty reports whether the node covers no tokens.
func (n *Node) IsEmpty() bool {
	return n.FirstToken < 0 || n.LastToken < n.FirstToken
}

// First returns the first token of the node, or nil.
func (n *Node) First() *Token {
	if n.IsEmpty() || n.Tree == nil {
		return nil
	}
	return n.Tree.Tokens[n.FirstToken]
}

// Last returns the last token of the node, or nil.
func (n *Node) Last() *Token {
	if n.IsEmpty() || n.Tree == nil {
		return nil
	}
	return n.Tree.Tokens[n.LastToken]
}

// Tokens returns the node's tokens.
func (n *Node) Tokens() []*Token {
	if n.IsEmpty() || n.Tree == nil {
		return nil
	}
	return n.Tree.Tokens[n.FirstToken : n.LastToken+1]
}

// Overlaps reports whether the node shares at least one token with the
// inclusive token range [first, last].
func (n *Node) Overlaps(first, last int) bool {
	return !n.IsEmpty() && n.FirstToken <= last && first <= n.LastToken
}

// AppendChild appends child to parent, detaching it from any previous parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetTokenRange sets the inclusive token range of a node.
func SetTokenRange(n *Node, first, last int) {
	if n == nil {
		return
	}
	n.FirstToken = first
	n.LastToken = last
}

// cloneNodes deep-copies the subtree rooted at n, pointing every copy at tree.
func cloneNodes(n *Node, tree *Tree) *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Kind:       n.Kind,
		FirstToken: n.FirstToken,
		LastToken:  n.LastToken,
		Tree:       tree,
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		AppendChild(clone, cloneNodes(child, tree))
	}
	return clone
}
