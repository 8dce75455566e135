package uid

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered 63-bit ids rendered as decimal strings.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a generator for node, which must be in [0, 1023].
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

// Generate returns a new id.
func (s *Snowflake) Generate() string {
	return s.node.Generate().String()
}
