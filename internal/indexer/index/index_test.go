package index

import (
	"reflect"
	"sort"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/internal/indexer/normalizer"
)

var corpus = []string{
	"machine learning is fascinating.",
	"deep learning is a subset of machine learning.",
	"artificial intelligence includes machine learning.",
	"learning about machine algorithms.",
}

func plain() *normalizer.Normalizer {
	return normalizer.New(normalizer.WithoutStemming())
}

func TestBuildPositions(t *testing.T) {
	idx := Build(plain(), corpus)

	tests := []struct {
		term string
		doc  DocID
		want []int
	}{
		{"machine", 0, []int{0}},
		{"learning", 0, []int{1}},
		{"fascinating", 0, []int{2}},
		{"learning", 1, []int{1, 4}},
		{"machine", 1, []int{3}},
		{"subset", 1, []int{2}},
		{"learning", 3, []int{0}},
		{"about", 3, []int{1}},
		{"deep", 0, nil},
		{"is", 0, nil},
		{"missing", 2, nil},
	}
	for _, tt := range tests {
		got := idx.Positions(tt.term, tt.doc)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Positions(%q, %d) = %v, want %v", tt.term, tt.doc, got, tt.want)
		}
	}
}

func TestBuildAgreesWithNormalize(t *testing.T) {
	n := normalizer.New()
	idx := Build(n, corpus)

	for i, doc := range corpus {
		docID := DocID(i)
		want := make(map[string][]int)
		for pos, term := range n.Normalize(doc) {
			want[term] = append(want[term], pos)
		}
		if got := idx.DocLength(docID); got != len(n.Normalize(doc)) {
			t.Errorf("DocLength(%d) = %d, want %d", docID, got, len(n.Normalize(doc)))
		}
		for term, positions := range want {
			if got := idx.Positions(term, docID); !reflect.DeepEqual(got, positions) {
				t.Errorf("doc %d term %q: got %v, want %v", docID, term, got, positions)
			}
		}
		for _, term := range idx.Terms() {
			if _, ok := want[term]; !ok && idx.Positions(term, docID) != nil {
				t.Errorf("doc %d lists term %q it does not contain", docID, term)
			}
		}
	}
}

func TestBuildPositionsStrictlyIncreasing(t *testing.T) {
	idx := Build(normalizer.New(normalizer.WithoutStopwords(), normalizer.WithoutStemming()), []string{"to be or not to be to be"})
	if idx.TermCount() != 4 {
		t.Fatalf("TermCount = %d, want 4", idx.TermCount())
	}
	for _, entry := range idx.Snapshot() {
		for _, p := range entry.Postings {
			if !sort.IntsAreSorted(p.Positions) {
				t.Errorf("term %q positions not sorted: %v", entry.Term, p.Positions)
			}
			for i := 1; i < len(p.Positions); i++ {
				if p.Positions[i] == p.Positions[i-1] {
					t.Errorf("term %q has duplicate position %d", entry.Term, p.Positions[i])
				}
			}
			if p.Frequency != len(p.Positions) {
				t.Errorf("term %q frequency %d != %d positions", entry.Term, p.Frequency, len(p.Positions))
			}
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(plain(), nil)
	if idx.DocCount() != 0 || idx.TermCount() != 0 {
		t.Errorf("expected empty index, got %d docs %d terms", idx.DocCount(), idx.TermCount())
	}
	if len(idx.Snapshot()) != 0 {
		t.Error("expected empty snapshot")
	}

	idx = Build(plain(), []string{"", "alpha", "   "})
	if idx.DocCount() != 3 {
		t.Errorf("DocCount = %d, want 3", idx.DocCount())
	}
	if idx.TermCount() != 1 || !idx.Contains("alpha") {
		t.Errorf("Terms = %v, want [alpha]", idx.Terms())
	}
	if idx.DocLength(0) != 0 || idx.DocLength(2) != 0 {
		t.Error("blank documents should have zero length")
	}
	if idx.DocLength(7) != 0 || idx.DocLength(-1) != 0 {
		t.Error("unknown documents should have zero length")
	}
}

func TestPostingsSortedByDoc(t *testing.T) {
	idx := Build(plain(), corpus)
	postings := idx.Postings("learning")
	if len(postings) != 4 {
		t.Fatalf("got %d postings, want 4", len(postings))
	}
	for i, p := range postings {
		if p.DocID != DocID(i) {
			t.Errorf("posting %d has DocID %d", i, p.DocID)
		}
	}
	if postings[1].Frequency != 2 {
		t.Errorf("doc 1 frequency = %d, want 2", postings[1].Frequency)
	}
	postings[1].Positions[0] = 99
	if idx.Positions("learning", 1)[0] == 99 {
		t.Error("Postings must return a copy")
	}
	if idx.Postings("nothing") != nil {
		t.Error("expected nil postings for unknown term")
	}
}

func TestSnapshotSorted(t *testing.T) {
	idx := Build(plain(), corpus)
	snap := idx.Snapshot()
	if len(snap) != idx.TermCount() {
		t.Fatalf("snapshot has %d entries, index has %d terms", len(snap), idx.TermCount())
	}
	if !sort.SliceIsSorted(snap, func(i, j int) bool { return snap[i].Term < snap[j].Term }) {
		t.Error("snapshot not sorted by term")
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(normalizer.New(), corpus)
	b := Build(normalizer.New(), corpus)
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("rebuilding produced a different index")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("rebuilding produced a different fingerprint")
	}

	reordered := []string{corpus[1], corpus[0], corpus[2], corpus[3]}
	if Build(normalizer.New(), reordered).Fingerprint() == a.Fingerprint() {
		t.Error("document order must change the fingerprint")
	}
	if Build(plain(), corpus).Fingerprint() == a.Fingerprint() {
		t.Error("normalizer must change the fingerprint")
	}
	split := []string{"ab", "c"}
	joined := []string{"a", "bc"}
	if Build(plain(), split).Fingerprint() == Build(plain(), joined).Fingerprint() {
		t.Error("document boundaries must change the fingerprint")
	}
}

func TestBuildBindsNormalizer(t *testing.T) {
	n := plain()
	if Build(n, corpus).Normalizer() != n {
		t.Error("index must keep the normalizer it was built with")
	}
	if Build(nil, corpus).Normalizer() == nil {
		t.Error("nil normalizer should fall back to the default")
	}
}
