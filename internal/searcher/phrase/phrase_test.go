package phrase

import (
	"reflect"
	"sync"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/normalizer"
)

var corpus = []string{
	"machine learning is fascinating.",
	"deep learning is a subset of machine learning.",
	"artificial intelligence includes machine learning.",
	"learning about machine algorithms.",
}

func normalizers() map[string]*normalizer.Normalizer {
	return map[string]*normalizer.Normalizer{
		"default":      normalizer.New(),
		"suffix":       normalizer.New(normalizer.WithStemmer(normalizer.SuffixStemmer{})),
		"no-stemming":  normalizer.New(normalizer.WithoutStemming()),
		"no-stopwords": normalizer.New(normalizer.WithoutStopwords()),
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		phrase string
		want   []index.DocID
	}{
		{"machine learning", []index.DocID{0, 1, 2}},
		{"deep learning", []index.DocID{1}},
		{"Machine Learning!", []index.DocID{0, 1, 2}},
		{"learning machine", []index.DocID{}},
		{"machine algorithms", []index.DocID{3}},
		{"learning", []index.DocID{0, 1, 2, 3}},
		{"quantum", []index.DocID{}},
		{"machine quantum", []index.DocID{}},
		{"artificial intelligence includes machine learning", []index.DocID{2}},
		{"", []index.DocID{}},
	}
	for name, n := range normalizers() {
		idx := index.Build(n, corpus)
		for _, tt := range tests {
			got := Search(idx, tt.phrase)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s: Search(%q) = %v, want %v", name, tt.phrase, got, tt.want)
			}
		}
	}
}

func TestSearchStopwordPhrase(t *testing.T) {
	idx := index.Build(normalizer.New(), append(corpus, "it is what it is"))
	for _, p := range []string{"is", "is a", "the of and", "  "} {
		if got := Search(idx, p); len(got) != 0 {
			t.Errorf("Search(%q) = %v, want empty", p, got)
		}
		for doc := index.DocID(0); int(doc) < idx.DocCount(); doc++ {
			if ContainsPhrase(idx, p, doc) {
				t.Errorf("ContainsPhrase(%q, %d) = true", p, doc)
			}
		}
	}
}

func TestAdjacencyUsesFilteredPositions(t *testing.T) {
	docs := []string{"machine is learning"}

	filtered := index.Build(normalizer.New(), docs)
	if !ContainsPhrase(filtered, "machine learning", 0) {
		t.Error("stop-word between terms should not break adjacency")
	}

	unfiltered := index.Build(normalizer.New(normalizer.WithoutStopwords()), docs)
	if ContainsPhrase(unfiltered, "machine learning", 0) {
		t.Error("without stop-word removal the terms are not adjacent")
	}
	if !ContainsPhrase(unfiltered, "machine is learning", 0) {
		t.Error("full phrase should match without stop-word removal")
	}
}

func TestSingleTermDegeneracy(t *testing.T) {
	idx := index.Build(normalizer.New(), corpus)
	for _, term := range idx.Terms() {
		for doc := index.DocID(0); int(doc) < idx.DocCount(); doc++ {
			want := len(idx.Positions(term, doc)) > 0
			if got := ContainsTerms(idx, []string{term}, doc); got != want {
				t.Errorf("ContainsTerms([%q], %d) = %v, want %v", term, doc, got, want)
			}
		}
	}
}

func TestEmptyDocumentsAndCorpus(t *testing.T) {
	idx := index.Build(normalizer.New(), nil)
	if got := Search(idx, "machine learning"); len(got) != 0 {
		t.Errorf("empty corpus: got %v", got)
	}

	idx = index.Build(normalizer.New(), []string{"", "machine learning", ""})
	if got := Search(idx, "machine learning"); !reflect.DeepEqual(got, []index.DocID{1}) {
		t.Errorf("got %v, want [1]", got)
	}
	if ContainsPhrase(idx, "machine", 0) {
		t.Error("empty document matched a phrase")
	}
	if ContainsPhrase(idx, "machine", 9) {
		t.Error("unknown document matched a phrase")
	}
}

func TestMatches(t *testing.T) {
	n := normalizer.New(normalizer.WithoutStemming())
	idx := index.Build(n, []string{"new york new york", "york new"})

	tests := []struct {
		phrase string
		doc    index.DocID
		want   []int
	}{
		{"new york", 0, []int{0, 2}},
		{"new york new", 0, []int{0}},
		{"york new york", 0, []int{1}},
		{"new", 0, []int{0, 2}},
		{"new york", 1, nil},
		{"york new", 1, []int{0}},
		{"boston", 0, nil},
	}
	for _, tt := range tests {
		got := Matches(idx, tt.phrase, tt.doc)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Matches(%q, %d) = %v, want %v", tt.phrase, tt.doc, got, tt.want)
		}
		if ContainsPhrase(idx, tt.phrase, tt.doc) != (len(tt.want) > 0) {
			t.Errorf("ContainsPhrase(%q, %d) disagrees with Matches", tt.phrase, tt.doc)
		}
	}
}

func TestSearchOrderedAndInRange(t *testing.T) {
	docs := []string{
		"red green blue", "green blue red", "blue red green",
		"red green", "green", "red green blue red green",
	}
	idx := index.Build(normalizer.New(), docs)
	for _, p := range []string{"red", "green", "red green", "green blue", "blue red green", "red green blue"} {
		got := Search(idx, p)
		for i, doc := range got {
			if doc < 0 || int(doc) >= len(docs) {
				t.Errorf("Search(%q) returned out-of-range doc %d", p, doc)
			}
			if i > 0 && got[i-1] >= doc {
				t.Errorf("Search(%q) = %v is not strictly ascending", p, got)
			}
		}
	}
}

func TestSearchIdempotentAcrossRebuilds(t *testing.T) {
	first := index.Build(normalizer.New(), corpus)
	second := index.Build(normalizer.New(), corpus)
	for _, p := range []string{"machine learning", "deep learning", "learning", "subset of machine"} {
		if a, b := Search(first, p), Search(second, p); !reflect.DeepEqual(a, b) {
			t.Errorf("Search(%q) differs across rebuilds: %v vs %v", p, a, b)
		}
	}
}

func TestConcurrentReaders(t *testing.T) {
	idx := index.Build(normalizer.New(), corpus)
	want := Search(idx, "machine learning")

	var wg sync.WaitGroup
	errs := make(chan []index.DocID, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Search(idx, "machine learning"); !reflect.DeepEqual(got, want) {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent search returned %v, want %v", got, want)
	}
}
