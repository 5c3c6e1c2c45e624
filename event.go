package diskbtree

import "diskbtree/internal/algo"

// Op identifies a structural edit reported through WithEventHandler.
type Op = algo.Op

const (
	OpSplit        = algo.OpSplit
	OpRootSplit    = algo.OpRootSplit
	OpBorrowLeft   = algo.OpBorrowLeft
	OpBorrowRight  = algo.OpBorrowRight
	OpMerge        = algo.OpMerge
	OpRootCollapse = algo.OpRootCollapse
)

// Event describes one structural edit.
type Event struct {
	Op     Op
	Node   NodeID // Parent of the edited children, or the new root
	Key    any    // Key of the insert or delete that caused the edit
	Height int    // Tree height after the edit
}

func (bt *Tree[K]) emit(op Op, node NodeID, key K) {
	switch op {
	case OpRootSplit, OpRootCollapse:
		bt.logger.Info("root height changed", "op", op.String(), "root", node, "height", bt.height)
	default:
		bt.logger.Debug("rebalanced", "op", op.String(), "node", node, "key", key)
	}

	if bt.onEvent != nil {
		bt.onEvent(Event{Op: op, Node: node, Key: key, Height: bt.height})
	}
}
