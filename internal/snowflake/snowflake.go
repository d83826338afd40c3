package snowflake

import "github.com/bwmarrin/snowflake"

// node starts as node 0 so IDs are available before Init (tests, CLI one-shots).
var node, _ = snowflake.NewNode(0)

// Init initializes the snowflake node with the given node ID.
// Node ID should be unique across all instances (0-1023).
// Call it once at startup, before any NextID call.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID generates a new unique snowflake ID.
func NextID() int64 {
	return node.Generate().Int64()
}
