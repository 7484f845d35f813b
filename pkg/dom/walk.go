package dom

// Visitor is called for every node reached by a walk. A non-nil error ends
// the walk and is returned unchanged.
type Visitor func(n *Node) error

// Walk visits root and its descendants in document order.
func Walk(root *Node, visit Visitor) error {
	return WalkWithContext(root, visit, nil)
}

// WalkWithContext visits root and its descendants in document order,
// calling enter before a node's children and leave after them. Either
// callback may be nil.
func WalkWithContext(root *Node, enter, leave Visitor) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	// Next is read before descending so a visitor may detach the child.
	for child := root.FirstChild; child != nil; {
		next := child.Next
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
		child = next
	}

	if leave != nil {
		return leave(root)
	}
	return nil
}
