package server

import (
	"context"
	"errors"

	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// ErrEmptyGraph indicates the graph was built with no nodes, so every
// query would come back empty.
var ErrEmptyGraph = errors.New("graph has no nodes")

// GraphHealthService reports degraded when the built graph is empty.
type GraphHealthService struct {
	Graph *moviegraph.Graph
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(context.Context) error {
	if s.Graph == nil || s.Graph.NodeCount() == 0 {
		return ErrEmptyGraph
	}
	return nil
}
