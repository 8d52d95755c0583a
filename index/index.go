// Package index implements an embeddable, in-memory full-text index. Callers
// register JSON documents under a fixed set of text-bearing fields; documents
// are then retrievable by free-text query, coarse-ranked by token overlap and
// reranked by fuzzy alignment against the stored text.
//
// The index is single-owner: it is not safe for concurrent mutation, and a
// caller that needs shared access must serialise around the whole structure.
package index

import (
	"log/slog"

	"github.com/derek9916/gianna/document"
)

// Token weights assigned at indexing time. A whole-word match is worth 50x a
// partial trigram overlap.
const (
	gramWeight int32 = 1
	wordWeight int32 = 50
)

// Posting ties an internal document id to the weight a token contributes to
// that document's coarse score.
type Posting struct {
	ID     uint32
	Weight int32
}

// Index maps tokens to postings and external identifiers to stored payloads.
type Index struct {
	fields   []string
	nextID   uint32
	ids      map[string]uint32  // external id -> internal id
	docs     map[uint32]string  // internal id -> serialised payload
	postings map[string][]Posting
	logger   *slog.Logger
}

// New creates an empty index over the given field names. The field list is
// fixed for the life of the index.
func New(fields []string) *Index {
	return &Index{
		fields:   append([]string(nil), fields...),
		ids:      make(map[string]uint32),
		docs:     make(map[uint32]string),
		postings: make(map[string][]Posting),
		logger:   slog.Default().With("component", "index"),
	}
}

// Clear drops every document, posting, and identity mapping and resets the
// internal id counter. The field configuration is kept.
func (ix *Index) Clear() {
	ix.nextID = 0
	ix.ids = make(map[string]uint32)
	ix.docs = make(map[uint32]string)
	ix.postings = make(map[string][]Posting)
}

// Fields returns a copy of the configured field names, in declaration order.
func (ix *Index) Fields() []string {
	return append([]string(nil), ix.fields...)
}

// Len reports the number of documents currently stored.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Tokens reports the number of distinct tokens with live postings.
func (ix *Index) Tokens() int {
	return len(ix.postings)
}

// Get re-parses and returns the stored payload for an external identifier.
func (ix *Index) Get(externalID string) (document.Document, error) {
	iid, ok := ix.ids[externalID]
	if !ok {
		return nil, wrapID("get", externalID, ErrUnknownIdentifier)
	}
	doc, err := document.Parse([]byte(ix.docs[iid]))
	if err != nil {
		return nil, wrapPayload("get", externalID, err)
	}
	return doc, nil
}
