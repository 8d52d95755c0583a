package index

import (
	"sort"
	"strings"

	"github.com/derek9916/gianna/document"
	"github.com/derek9916/gianna/match"
	"github.com/derek9916/gianna/tokenizer"
)

type scoredDoc struct {
	id    uint32
	score float64
}

// Search resolves a free-text query to stored documents, best match first.
// A query that trims to empty returns every stored document once, in
// store-iteration order, without ranking. Search never fails: a query with
// no matching tokens yields an empty slice, and a stored payload that can no
// longer be parsed is logged and excluded.
func (ix *Index) Search(query string) []document.Document {
	q := strings.TrimSpace(query)
	if q == "" {
		all := make([]document.Document, 0, len(ix.docs))
		for iid, raw := range ix.docs {
			doc, err := document.Parse([]byte(raw))
			if err != nil {
				ix.logger.Warn("excluding unreadable payload", "internal_id", iid, "error", err)
				continue
			}
			all = append(all, doc)
		}
		return all
	}

	ranked := ix.scoreCandidates(q)
	out := make([]document.Document, 0, len(ranked))
	for _, c := range ranked {
		doc, err := document.Parse([]byte(ix.docs[c.id]))
		if err != nil {
			ix.logger.Warn("excluding unreadable payload", "internal_id", c.id, "error", err)
			continue
		}
		out = append(out, doc)
	}
	return out
}

// scoreCandidates runs the two-stage scoring pipeline: coarse token-overlap
// accumulation with pruning, then fuzzy-alignment reranking of the survivors.
func (ix *Index) scoreCandidates(query string) []scoredDoc {
	candidates := coarsePrune(ix.tokenScores(query))
	ranked := ix.rerank(query, candidates)

	ix.logger.Debug("query scored",
		"query", query,
		"candidates", len(candidates),
		"results", len(ranked),
	)
	return ranked
}

// tokenScores accumulates posting weights per internal id over every query
// token. Query tokens are deliberately not deduplicated: a token appearing
// twice in the query contributes its postings twice.
func (ix *Index) tokenScores(query string) map[uint32]float64 {
	tokens := tokenizer.Grams(query)
	tokens = append(tokens, tokenizer.Words(query)...)

	scores := make(map[uint32]float64)
	for _, tok := range tokens {
		for _, p := range ix.postings[tok] {
			scores[p.ID] += float64(p.Weight)
		}
	}
	return scores
}

// coarsePrune keeps the candidates within 2x of the best token-overlap
// score: anything strictly below highest/2 is discarded before the fuzzy
// stage ever sees it.
func coarsePrune(scores map[uint32]float64) []scoredDoc {
	if len(scores) == 0 {
		return nil
	}
	highest := 0.0
	for _, score := range scores {
		if score > highest {
			highest = score
		}
	}
	kept := make([]scoredDoc, 0, len(scores))
	for id, score := range scores {
		if score >= highest/2 {
			kept = append(kept, scoredDoc{id: id, score: score})
		}
	}
	return kept
}

// rerank replaces each survivor's coarse score with the fuzzy aligner's
// score for the query against the document's re-extracted field text.
// Candidates the aligner cannot match at all are dropped, not zero-scored.
func (ix *Index) rerank(query string, candidates []scoredDoc) []scoredDoc {
	ranked := make([]scoredDoc, 0, len(candidates))
	for _, c := range candidates {
		doc, err := document.Parse([]byte(ix.docs[c.id]))
		if err != nil {
			ix.logger.Warn("dropping candidate with unreadable payload",
				"internal_id", c.id, "error", err)
			continue
		}
		score, ok := match.Best(query, document.Extract(doc, ix.fields))
		if !ok {
			continue
		}
		ranked = append(ranked, scoredDoc{id: c.id, score: float64(score)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}
