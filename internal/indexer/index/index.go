// Package index builds and serves a positional inverted index over an
// immutable document collection. An InvertedIndex is built once by Build and
// never modified afterwards, so any number of goroutines may read it.
package index

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/normalizer"
)

type InvertedIndex struct {
	terms       map[string]map[DocID][]int
	docLengths  []int
	normalizer  *normalizer.Normalizer
	fingerprint string
}

// Build normalizes each document in order and records every term position.
// The returned index keeps n; queries must go through the same normalizer.
// A nil n selects normalizer.New().
func Build(n *normalizer.Normalizer, documents []string) *InvertedIndex {
	if n == nil {
		n = normalizer.New()
	}
	idx := &InvertedIndex{
		terms:      make(map[string]map[DocID][]int),
		docLengths: make([]int, len(documents)),
		normalizer: n,
	}
	h := sha256.New()
	h.Write([]byte(n.ID()))
	var lenBuf [8]byte
	for i, doc := range documents {
		docID := DocID(i)
		terms := n.Normalize(doc)
		for pos, term := range terms {
			idx.insert(term, docID, pos)
		}
		idx.docLengths[i] = len(terms)

		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(doc)))
		h.Write(lenBuf[:])
		h.Write([]byte(doc))
	}
	idx.fingerprint = hex.EncodeToString(h.Sum(nil))

	slog.Default().With("component", "index-builder").Debug("index built",
		"docs", len(documents),
		"terms", len(idx.terms),
		"normalizer", n.ID(),
	)
	return idx
}

// insert appends pos to the position list of (term, doc), creating the term
// entry and the document entry when they do not exist yet. Callers feed
// positions in scan order, which keeps every list strictly increasing.
func (x *InvertedIndex) insert(term string, doc DocID, pos int) {
	docs, exists := x.terms[term]
	if !exists {
		docs = make(map[DocID][]int)
		x.terms[term] = docs
	}
	positions, exists := docs[doc]
	if !exists {
		positions = make([]int, 0, 4)
	}
	docs[doc] = append(positions, pos)
}

// Normalizer returns the normalizer the index was built with.
func (x *InvertedIndex) Normalizer() *normalizer.Normalizer {
	return x.normalizer
}

// Positions returns the positions of term in doc, or nil if term does not
// occur there. The slice is shared with the index and must not be modified.
func (x *InvertedIndex) Positions(term string, doc DocID) []int {
	docs, exists := x.terms[term]
	if !exists {
		return nil
	}
	return docs[doc]
}

func (x *InvertedIndex) Contains(term string) bool {
	_, exists := x.terms[term]
	return exists
}

// Postings returns a copy of term's postings ordered by DocID.
func (x *InvertedIndex) Postings(term string) PostingList {
	docs, exists := x.terms[term]
	if !exists {
		return nil
	}
	result := make(PostingList, 0, len(docs))
	for docID, positions := range docs {
		result = append(result, Posting{
			DocID:     docID,
			Frequency: len(positions),
			Positions: append([]int(nil), positions...),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// Terms returns every indexed term in lexical order.
func (x *InvertedIndex) Terms() []string {
	terms := make([]string, 0, len(x.terms))
	for term := range x.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func (x *InvertedIndex) TermCount() int {
	return len(x.terms)
}

func (x *InvertedIndex) DocCount() int {
	return len(x.docLengths)
}

// DocLength returns the number of normalized terms in doc, or 0 for an
// unknown document.
func (x *InvertedIndex) DocLength(doc DocID) int {
	if doc < 0 || int(doc) >= len(x.docLengths) {
		return 0
	}
	return x.docLengths[doc]
}

// Snapshot returns the whole index sorted by term and then by DocID.
func (x *InvertedIndex) Snapshot() []TermEntry {
	entries := make([]TermEntry, 0, len(x.terms))
	for _, term := range x.Terms() {
		entries = append(entries, TermEntry{
			Term:     term,
			Postings: x.Postings(term),
		})
	}
	return entries
}

// Fingerprint identifies the documents and normalization policy the index
// was built from.
func (x *InvertedIndex) Fingerprint() string {
	return x.fingerprint
}
