package ptree

// WalkFunc is called for each node. Return a non-nil error to stop.
type WalkFunc func(n Node) error

// Walk visits root and its descendants in pre-order. The first error
// returned by fn stops the walk and is returned.
func Walk(root Node, fn WalkFunc) error {
	if root.IsZero() {
		return nil
	}

	if err := fn(root); err != nil {
		return err
	}

	for _, child := range root.rec().children {
		if err := Walk(Node{tree: root.tree, id: child}, fn); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext calls enter before a node's children and leave after
// them. Either callback may be nil.
func WalkWithContext(root Node, enter, leave WalkFunc) error {
	if root.IsZero() {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, child := range root.rec().children {
		if err := WalkWithContext(Node{tree: root.tree, id: child}, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		return leave(root)
	}

	return nil
}

// FindAll returns root and every descendant matching predicate, in
// pre-order.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck // the visitor never fails
	Walk(root, func(node Node) error {
		if predicate(node) {
			result = append(result, node)
		}

		return nil
	})

	return result
}

var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
