package index

// DocID is a document's zero-based position in the collection the index was
// built from.
type DocID int

type Posting struct {
	DocID     DocID `json:"doc_id"`
	Frequency int   `json:"frequency"`
	Positions []int `json:"positions"`
}

type PostingList []Posting

type TermEntry struct {
	Term     string      `json:"term"`
	Postings PostingList `json:"postings"`
}
