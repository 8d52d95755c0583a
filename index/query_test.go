package index

import (
	"fmt"
	"testing"

	"github.com/derek9916/gianna/document"
)

func TestCoarsePruneDiscardsBelowHalfOfBest(t *testing.T) {
	scores := map[uint32]float64{
		1: 100,
		2: 40,
		3: 50,
	}
	kept := coarsePrune(scores)

	found := make(map[uint32]float64)
	for _, c := range kept {
		found[c.id] = c.score
	}
	if _, ok := found[2]; ok {
		t.Fatal("candidate scoring 40 survived pruning against best score 100")
	}
	if _, ok := found[1]; !ok {
		t.Fatal("best candidate pruned")
	}
	if _, ok := found[3]; !ok {
		t.Fatal("candidate at exactly half the best score must survive")
	}
}

func TestCoarsePruneEmptyScores(t *testing.T) {
	if kept := coarsePrune(nil); kept != nil {
		t.Fatalf("coarsePrune(nil) = %v, want nil", kept)
	}
}

func TestTokenScoresWordOutweighsGramOverlap(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"word","title":"fox"}`)
	mustAdd(t, ix, `{"_id":"gram","title":"foxtrot"}`)

	scores := ix.tokenScores("fox")
	wordScore := scores[ix.ids["word"]]
	gramScore := scores[ix.ids["gram"]]
	if wordScore == 0 || gramScore == 0 {
		t.Fatalf("expected both documents as candidates, got %v", scores)
	}
	if wordScore <= gramScore {
		t.Fatalf("whole-word match scored %v, n-gram overlap %v; word must outrank", wordScore, gramScore)
	}
}

func TestTokenScoresCountsRepeatedQueryTokens(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"a","title":"fox"}`)

	once := ix.tokenScores("fox")[ix.ids["a"]]
	twice := ix.tokenScores("fox fox")[ix.ids["a"]]
	if twice != 2*once {
		t.Fatalf("repeated query token scored %v, want %v", twice, 2*once)
	}
}

func TestTokenScoresEmptyWhenNothingMatches(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"a","title":"red fox"}`)

	if scores := ix.tokenScores("zzzz"); len(scores) != 0 {
		t.Fatalf("tokenScores(zzzz) = %v, want empty", scores)
	}
	if got := ix.Search("zzzz"); len(got) != 0 {
		t.Fatalf("Search(zzzz) = %v, want empty", got)
	}
}

func TestRerankDropsUnalignableCandidates(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"a","title":"red fox"}`)
	mustAdd(t, ix, `{"_id":"b","title":"zzz"}`)

	candidates := []scoredDoc{
		{id: ix.ids["a"], score: 100},
		{id: ix.ids["b"], score: 100},
	}
	ranked := ix.rerank("fox", candidates)
	if len(ranked) != 1 || ranked[0].id != ix.ids["a"] {
		t.Fatalf("rerank kept %v, want only the alignable candidate", ranked)
	}
}

func TestRerankSortsDescending(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"a","title":"red fox"}`)
	mustAdd(t, ix, `{"_id":"b","title":"a red fox runs far away"}`)
	mustAdd(t, ix, `{"_id":"c","title":"fred oxen"}`)

	ranked := ix.scoreCandidates("red fox")
	for i := 1; i < len(ranked); i++ {
		if ranked[i].score > ranked[i-1].score {
			t.Fatalf("results not sorted descending: %v", ranked)
		}
	}
}

func TestIdempotentPostingInsertion(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"a","title":"red fox"}`)

	// Re-running the indexer for the same id must not accumulate duplicate
	// postings or inflate scores.
	before := ix.tokenScores("fox")[ix.ids["a"]]
	ix.indexItem(ix.ids["a"], "red fox")
	after := ix.tokenScores("fox")[ix.ids["a"]]
	if before != after {
		t.Fatalf("reindex inflated score from %v to %v", before, after)
	}
	for token, list := range ix.postings {
		seen := make(map[uint32]bool)
		for _, p := range list {
			if seen[p.ID] {
				t.Fatalf("token %q holds duplicate postings for one id", token)
			}
			seen[p.ID] = true
		}
	}
}

func TestShortWordKeepsWordWeight(t *testing.T) {
	ix := New([]string{"title"})
	mustAdd(t, ix, `{"_id":"a","title":"fox"}`)

	// "fox" surfaces as both a trigram and a whole word under the same
	// token string; the posting must carry the word weight.
	list := ix.postings["fox"]
	if len(list) != 1 {
		t.Fatalf("postings[fox] = %v, want one posting", list)
	}
	if list[0].Weight != wordWeight {
		t.Fatalf("postings[fox] weight = %d, want %d", list[0].Weight, wordWeight)
	}
}

func BenchmarkAdd(b *testing.B) {
	ix := New([]string{"title", "body"})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		raw := fmt.Sprintf(`{"_id":"doc-%d","title":"benchmark title","body":"a benchmark document with several distinct terms for indexing"}`, i)
		doc, err := document.Parse([]byte(raw))
		if err != nil {
			b.Fatal(err)
		}
		if err := ix.Add(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	ix := New([]string{"title", "body"})
	for i := 0; i < 1000; i++ {
		raw := fmt.Sprintf(`{"_id":"doc-%d","title":"distributed search","body":"search engine with inverted index and fuzzy ranking %d"}`, i, i)
		doc, err := document.Parse([]byte(raw))
		if err != nil {
			b.Fatal(err)
		}
		if err := ix.Add(doc); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results := ix.Search("search")
		_ = results
	}
}
