// Package textsim converts free text into weighted term vectors and scores
// similarity between two texts. Vector spaces are fit per call over the
// documents of that call only, so each comparison is statistically
// self-contained and independent of any global vocabulary.
package textsim

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const defaultMaxFeatures = 500

// Engine builds TF-IDF term vectors over unigrams and bigrams.
type Engine struct {
	maxFeatures int
}

// New returns an Engine keeping at most maxFeatures terms per fit.
// A non-positive value falls back to the default cap of 500.
func New(maxFeatures int) *Engine {
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}
	return &Engine{maxFeatures: maxFeatures}
}

// Keyword is a term with its TF-IDF weight.
type Keyword struct {
	Term   string
	Weight float64
}

// Similarity computes a symmetric cosine similarity in [0,1] between two
// text blobs. Empty or whitespace-only input short-circuits to 0 without
// fitting a vector space.
func (e *Engine) Similarity(text1, text2 string) float64 {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return 0
	}
	matrix, _ := e.fit([]string{text1, text2})
	if len(matrix) < 2 {
		return 0
	}
	return CosineSimilarity(matrix[0], matrix[1])
}

// TopKeywords extracts the topN highest-weighted terms from a single text.
// The vector space is fit over that one document only. Results are sorted
// by weight descending, ties broken by first appearance in the text;
// zero-weight terms are dropped.
func (e *Engine) TopKeywords(text string, topN int) []Keyword {
	if strings.TrimSpace(text) == "" || topN <= 0 {
		return nil
	}
	matrix, vocab := e.fit([]string{text})
	if len(matrix) == 0 {
		return nil
	}
	keywords := make([]Keyword, 0, len(vocab))
	for i, term := range vocab {
		if matrix[0][i] > 0 {
			keywords = append(keywords, Keyword{Term: term, Weight: matrix[0][i]})
		}
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Weight > keywords[j].Weight
	})
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

// fit builds the vocabulary over all documents (first-appearance order) and
// returns one L2-normalized TF-IDF row per document.
func (e *Engine) fit(docs []string) ([][]float64, []string) {
	type termStat struct {
		index int
		total int
	}
	stats := map[string]*termStat{}
	var vocab []string
	docTerms := make([]map[string]int, len(docs))

	for d, doc := range docs {
		counts := map[string]int{}
		for _, term := range ngrams(tokenize(doc)) {
			counts[term]++
			if s, ok := stats[term]; ok {
				s.total++
			} else {
				stats[term] = &termStat{index: len(vocab), total: 1}
				vocab = append(vocab, term)
			}
		}
		docTerms[d] = counts
	}

	if len(vocab) == 0 {
		return nil, nil
	}

	// Feature cap keeps the highest-count terms, earliest first on ties.
	if len(vocab) > e.maxFeatures {
		kept := append([]string(nil), vocab...)
		sort.SliceStable(kept, func(i, j int) bool {
			return stats[kept[i]].total > stats[kept[j]].total
		})
		kept = kept[:e.maxFeatures]
		sort.SliceStable(kept, func(i, j int) bool {
			return stats[kept[i]].index < stats[kept[j]].index
		})
		vocab = kept
	}

	// Document frequency for smoothed IDF.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0
		for _, counts := range docTerms {
			if counts[term] > 0 {
				df++
			}
		}
		idf[i] = math.Log((1+n)/(1+float64(df))) + 1
	}

	matrix := make([][]float64, len(docs))
	for d, counts := range docTerms {
		row := make([]float64, len(vocab))
		for i, term := range vocab {
			row[i] = float64(counts[term]) * idf[i]
		}
		l2Normalize(row)
		matrix[d] = row
	}
	return matrix, vocab
}

// tokenize lower-cases the text, splits it into runs of word characters,
// keeps tokens of at least two characters and drops English stop words.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() >= 2 {
			tok := current.String()
			if _, stop := englishStopWords[tok]; !stop {
				tokens = append(tokens, tok)
			}
		}
		current.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// ngrams returns the unigrams plus space-joined bigrams of the token stream.
func ngrams(tokens []string) []string {
	grams := make([]string, 0, 2*len(tokens))
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

func l2Normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

// CosineSimilarity computes dot(v1,v2)/(|v1|*|v2|) clamped to [0,1].
// Mismatched lengths are tolerated by zero-padding the shorter vector; a
// zero norm on either side yields 0.
func CosineSimilarity(v1, v2 []float64) float64 {
	if len(v1) == 0 || len(v2) == 0 {
		return 0
	}
	n := len(v1)
	if len(v2) > n {
		n = len(v2)
	}
	var dot, norm1, norm2 float64
	for i := 0; i < n; i++ {
		var a, b float64
		if i < len(v1) {
			a = v1[i]
		}
		if i < len(v2) {
			b = v2[i]
		}
		dot += a * b
		norm1 += a * a
		norm2 += b * b
	}
	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
	return math.Max(0, math.Min(1, sim))
}

// NormalizeWeights scales a weight map so the values sum to 1.0. Empty maps
// and all-zero maps are returned as-is.
func NormalizeWeights(weights map[string]float64) map[string]float64 {
	if len(weights) == 0 {
		return map[string]float64{}
	}
	var total float64
	for _, v := range weights {
		total += v
	}
	if total == 0 {
		return weights
	}
	out := make(map[string]float64, len(weights))
	for k, v := range weights {
		out[k] = v / total
	}
	return out
}

// WeightedMap pairs a weight map with the weight of its signal source.
type WeightedMap struct {
	Weights map[string]float64
	Weight  float64
}

// MergeWeighted accumulates result[key] += value * source weight across all
// sources into one combined map.
func MergeWeighted(sources []WeightedMap) map[string]float64 {
	result := map[string]float64{}
	for _, src := range sources {
		for k, v := range src.Weights {
			result[k] += v * src.Weight
		}
	}
	return result
}
