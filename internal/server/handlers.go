package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dhruvgandhi/sixdegrees/internal/moviegraph"
)

// Stats carries dataset-level counts alongside the graph counts.
type Stats struct {
	Movies  int
	Ratings int
}

// APIHandlers exposes read-only queries over the built graph.
type APIHandlers struct {
	logger *slog.Logger
	graph  *moviegraph.Graph
	stats  Stats
}

// NewAPIHandlers wires the handlers over an immutable graph. The graph is
// shared read-only across requests; each shortest-path call carries its
// own traversal state, so no locking is needed.
func NewAPIHandlers(logger *slog.Logger, g *moviegraph.Graph, stats Stats) *APIHandlers {
	return &APIHandlers{logger: logger, graph: g, stats: stats}
}

type statsResponse struct {
	Movies  int `json:"movies"`
	Ratings int `json:"ratings"`
	Nodes   int `json:"nodes"`
	Edges   int `json:"edges"`
}

func (h *APIHandlers) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	respondJSON(w, http.StatusOK, statsResponse{
		Movies:  h.stats.Movies,
		Ratings: h.stats.Ratings,
		Nodes:   h.graph.NodeCount(),
		Edges:   h.graph.EdgeCount(),
	})
}

type pathNodeResponse struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
}

type shortestPathResponse struct {
	From  int                `json:"from"`
	To    int                `json:"to"`
	Hops  int                `json:"hops"`
	Nodes []pathNodeResponse `json:"nodes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandlers) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	from, ok := h.nodeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := h.nodeParam(w, r, "to")
	if !ok {
		return
	}

	path, found := moviegraph.ShortestPath(h.graph, from, to)
	if !found {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "no path found"})
		return
	}

	nodes := make([]pathNodeResponse, len(path))
	for i, pos := range path {
		nodes[i] = pathNodeResponse{Position: pos, Title: h.graph.Title(pos)}
	}
	respondJSON(w, http.StatusOK, shortestPathResponse{
		From:  from,
		To:    to,
		Hops:  len(path) - 1,
		Nodes: nodes,
	})
}

// nodeParam parses a node position query parameter, writing a 400 response
// and reporting false when it is missing, non-numeric, or out of range.
func (h *APIHandlers) nodeParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: name + " is required"})
		return 0, false
	}
	pos, err := strconv.Atoi(raw)
	if err != nil || !h.graph.Valid(pos) {
		h.logger.Debug("rejected node position", "param", name, "value", raw)
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid node position " + raw})
		return 0, false
	}
	return pos, true
}
