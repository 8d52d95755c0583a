package index

import (
	"fmt"

	"github.com/derek9916/gianna/document"
	"github.com/derek9916/gianna/tokenizer"
)

// Add ingests a new document. The external id is read from the document's
// _id member; the next dense internal id is assigned and never reused. The
// payload is stored serialised, and the extracted field text is tokenised
// into postings.
func (ix *Index) Add(doc document.Document) error {
	id, ok := doc.ID()
	if !ok {
		return fmt.Errorf("add: %w", ErrMissingIdentifier)
	}
	if _, exists := ix.ids[id]; exists {
		return wrapID("add", id, ErrDuplicateIdentifier)
	}
	payload, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("add %q: encoding payload: %w", id, err)
	}

	iid := ix.nextID
	ix.nextID++
	ix.ids[id] = iid
	ix.docs[iid] = string(payload)
	ix.indexItem(iid, document.Extract(doc, ix.fields))

	ix.logger.Debug("document indexed",
		"id", id,
		"internal_id", iid,
		"docs", len(ix.docs),
		"tokens", len(ix.postings),
	)
	return nil
}

// Update replaces a known document's payload and rebuilds its postings. The
// internal id is stable across updates.
func (ix *Index) Update(doc document.Document) error {
	id, ok := doc.ID()
	if !ok {
		return fmt.Errorf("update: %w", ErrMissingIdentifier)
	}
	iid, exists := ix.ids[id]
	if !exists {
		return wrapID("update", id, ErrUnknownIdentifier)
	}
	payload, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("update %q: encoding payload: %w", id, err)
	}

	ix.stripPostings(iid)
	ix.docs[iid] = string(payload)
	ix.indexItem(iid, document.Extract(doc, ix.fields))

	ix.logger.Debug("document reindexed", "id", id, "internal_id", iid)
	return nil
}

// Remove deletes a document and every posting referencing it. It reports
// whether the external id was known; removing an unknown id changes nothing.
// This is the expensive path: with no reverse map from internal id to tokens,
// it scans every postings list in the index.
func (ix *Index) Remove(externalID string) bool {
	iid, ok := ix.ids[externalID]
	if !ok {
		return false
	}
	delete(ix.docs, iid)
	delete(ix.ids, externalID)
	ix.stripPostings(iid)

	ix.logger.Debug("document removed", "id", externalID, "internal_id", iid)
	return true
}

// indexItem tokenises text and inserts postings for the internal id: weight
// 1 per distinct trigram, weight 50 per distinct whole word.
func (ix *Index) indexItem(iid uint32, text string) {
	for _, gram := range dedup(tokenizer.Grams(text)) {
		ix.insertPosting(gram, iid, gramWeight)
	}
	for _, word := range dedup(tokenizer.Words(text)) {
		ix.insertPosting(word, iid, wordWeight)
	}
}

// insertPosting is idempotent per (token, internal id): a second insert never
// duplicates the posting, it only raises the weight. Short words surface in
// both the gram and word streams under the same token string, and the word
// weight must win.
func (ix *Index) insertPosting(token string, iid uint32, weight int32) {
	list := ix.postings[token]
	for i := range list {
		if list[i].ID == iid {
			if weight > list[i].Weight {
				list[i].Weight = weight
			}
			return
		}
	}
	ix.postings[token] = append(list, Posting{ID: iid, Weight: weight})
}

// stripPostings removes the internal id from every postings list and drops
// tokens whose list becomes empty.
func (ix *Index) stripPostings(iid uint32) {
	for token, list := range ix.postings {
		kept := list[:0]
		for _, p := range list {
			if p.ID != iid {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(ix.postings, token)
			continue
		}
		ix.postings[token] = kept
	}
}

// dedup keeps the first occurrence of each token, preserving order.
func dedup(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
