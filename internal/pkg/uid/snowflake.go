package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates time-ordered numeric IDs from a single node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a snowflake generator for node 1.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: node}, nil
}

// Generate returns a new numeric ID.
func (s *Snowflake) Generate() uint64 {
	return uint64(s.node.Generate().Int64())
}
