// Package phrase answers exact-phrase queries against a positional index.
//
// A phrase matches a document when its terms occur there at consecutive
// positions of the normalized stream. Phrases are normalized with the index's
// own normalizer; terms passed to the *Terms variants must already be
// normalized the same way, which is not checked.
package phrase

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/index"
)

// ContainsPhrase reports whether doc contains phrase. A phrase that
// normalizes to nothing, such as one made only of stop-words, is contained
// in no document.
func ContainsPhrase(idx *index.InvertedIndex, phrase string, doc index.DocID) bool {
	return ContainsTerms(idx, idx.Normalizer().Normalize(phrase), doc)
}

// ContainsTerms is ContainsPhrase for an already-normalized phrase.
func ContainsTerms(idx *index.InvertedIndex, terms []string, doc index.DocID) bool {
	lists, ok := positionLists(idx, terms, doc)
	if !ok {
		return false
	}
	for _, anchor := range lists[0] {
		if matchesAt(lists, anchor) {
			return true
		}
	}
	return false
}

// Search returns, in ascending order, every document that contains phrase.
func Search(idx *index.InvertedIndex, phrase string) []index.DocID {
	return SearchTerms(idx, idx.Normalizer().Normalize(phrase))
}

// SearchTerms is Search for an already-normalized phrase.
func SearchTerms(idx *index.InvertedIndex, terms []string) []index.DocID {
	result := make([]index.DocID, 0)
	if len(terms) == 0 {
		return result
	}
	for doc := index.DocID(0); int(doc) < idx.DocCount(); doc++ {
		if ContainsTerms(idx, terms, doc) {
			result = append(result, doc)
		}
	}
	return result
}

// Matches returns every anchor position at which phrase occurs in doc, in
// ascending order.
func Matches(idx *index.InvertedIndex, phrase string, doc index.DocID) []int {
	return MatchTerms(idx, idx.Normalizer().Normalize(phrase), doc)
}

// MatchTerms is Matches for an already-normalized phrase.
func MatchTerms(idx *index.InvertedIndex, terms []string, doc index.DocID) []int {
	lists, ok := positionLists(idx, terms, doc)
	if !ok {
		return nil
	}
	var anchors []int
	for _, anchor := range lists[0] {
		if matchesAt(lists, anchor) {
			anchors = append(anchors, anchor)
		}
	}
	return anchors
}

// positionLists collects the position list of each term in doc. It stops at
// the first term that does not occur there.
func positionLists(idx *index.InvertedIndex, terms []string, doc index.DocID) ([][]int, bool) {
	if len(terms) == 0 {
		return nil, false
	}
	lists := make([][]int, len(terms))
	for i, term := range terms {
		positions := idx.Positions(term, doc)
		if len(positions) == 0 {
			return nil, false
		}
		lists[i] = positions
	}
	return lists, true
}

func matchesAt(lists [][]int, anchor int) bool {
	for k := 1; k < len(lists); k++ {
		if !containsPosition(lists[k], anchor+k) {
			return false
		}
	}
	return true
}

func containsPosition(positions []int, want int) bool {
	i := sort.SearchInts(positions, want)
	return i < len(positions) && positions[i] == want
}
