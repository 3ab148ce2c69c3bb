package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/titlematch/pkg/engine"
	"github.com/hazyhaar/titlematch/pkg/kit"
)

// MaxBatch is the largest number of titles one batch request may carry.
const MaxBatch = 100

// DefaultExplainLimit is how many candidates an explained match lists.
const DefaultExplainLimit = 5

// errInvalidRequest marks errors caused by the caller.
var errInvalidRequest = errors.New("invalid request")

// Matcher is what the endpoints query. *engine.Holder implements it.
type Matcher interface {
	NormalizeDetailed(input string) (engine.MatchResult, bool)
	Rank(input string, limit int) []engine.Candidate
	Titles() []string
	Prefixes() []string
	Threshold() float64
}

// Shared request/response types used by both HTTP and MCP transports.

type normalizeReq struct {
	Title   string
	Explain bool
	Limit   int
}

type normalizeBatchReq struct {
	Titles []string
}

type normalizeResponse struct {
	Input      string             `json:"input"`
	Title      string             `json:"title"`
	Matched    bool               `json:"matched"`
	Score      float64            `json:"score"`
	Candidates []engine.Candidate `json:"candidates,omitempty"`
}

type batchResponse struct {
	Results []normalizeResponse `json:"results"`
}

type titlesResponse struct {
	Titles    []string `json:"titles"`
	Prefixes  []string `json:"prefixes"`
	Threshold float64  `json:"threshold"`
}

// Endpoints are the actions served over HTTP and MCP.
type Endpoints struct {
	NormalizeTitle kit.Endpoint
	NormalizeBatch kit.Endpoint
	ListTitles     kit.Endpoint
}

// NewEndpoints builds the endpoints over m, each wrapped with request IDs and logging.
func NewEndpoints(m Matcher, logger *slog.Logger) Endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return Endpoints{
		NormalizeTitle: wrap("normalize_title", normalizeTitleEndpoint(m)),
		NormalizeBatch: wrap("normalize_batch", normalizeBatchEndpoint(m)),
		ListTitles:     wrap("list_titles", listTitlesEndpoint(m)),
	}
}

func normalize(m Matcher, input string) normalizeResponse {
	resp := normalizeResponse{Input: input}
	if res, ok := m.NormalizeDetailed(input); ok {
		resp.Title = res.Title
		resp.Matched = true
		resp.Score = res.Score
	}
	return resp
}

func normalizeTitleEndpoint(m Matcher) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		resp := normalize(m, req.Title)
		if req.Explain {
			limit := req.Limit
			if limit <= 0 {
				limit = DefaultExplainLimit
			}
			resp.Candidates = m.Rank(req.Title, limit)
		}
		return resp, nil
	}
}

func normalizeBatchEndpoint(m Matcher) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeBatchReq)
		if len(req.Titles) == 0 {
			return nil, fmt.Errorf("%w: titles array is empty", errInvalidRequest)
		}
		if len(req.Titles) > MaxBatch {
			return nil, fmt.Errorf("%w: too many titles (max %d, got %d)", errInvalidRequest, MaxBatch, len(req.Titles))
		}
		results := make([]normalizeResponse, len(req.Titles))
		for i, title := range req.Titles {
			results[i] = normalize(m, title)
		}
		return batchResponse{Results: results}, nil
	}
}

func listTitlesEndpoint(m Matcher) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return titlesResponse{
			Titles:    m.Titles(),
			Prefixes:  m.Prefixes(),
			Threshold: m.Threshold(),
		}, nil
	}
}
