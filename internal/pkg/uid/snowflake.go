package uid

import (
	"errors"

	"github.com/bwmarrin/snowflake"
)

// ErrInvalidNode is returned when the node number does not fit in 10 bits.
var ErrInvalidNode = errors.New("uid: snowflake node must be between 0 and 1023")

// Snowflake generates 63-bit, time-ordered numeric IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a generator for the given node (0-1023).
func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > 1023 {
		return nil, ErrInvalidNode
	}

	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns the next ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
