package normalizer

import (
	"fmt"
	"strings"
	"testing"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog",
	"medium": `Distributed search engines process queries across multiple shards to achieve
        horizontal scalability. Each shard maintains its own inverted index and responds
        to queries independently.`,
	"long": strings.Repeat(`Information retrieval systems combine tokenization, stemming, and stop word
        removal to normalize text into searchable terms. The inverted index maps each
        term to the documents containing it, along with positional information for phrase
        queries. `, 20),
}

func BenchmarkNormalize(b *testing.B) {
	for _, stemmer := range []Stemmer{SnowballStemmer{}, SuffixStemmer{}} {
		n := New(WithStemmer(stemmer))
		for name, text := range sampleTexts {
			b.Run(fmt.Sprintf("%s/%s", stemmer.Name(), name), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(text)))
				for i := 0; i < b.N; i++ {
					_ = n.Normalize(text)
				}
			})
		}
	}
}

func BenchmarkNormalizeParallel(b *testing.B) {
	n := New()
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = n.Normalize(text)
		}
	})
}
