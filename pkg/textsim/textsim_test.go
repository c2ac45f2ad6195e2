package textsim_test

import (
	"testing"

	"go-oscrec-backend/pkg/textsim"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	engine := textsim.New(0)

	t.Run("Should return 1 for identical texts", func(t *testing.T) {
		text := "golang concurrency patterns worker pools"
		assert.InDelta(t, 1.0, engine.Similarity(text, text), 1e-9)
	})

	t.Run("Should return 0 for empty or whitespace input", func(t *testing.T) {
		assert.Equal(t, 0.0, engine.Similarity("", "golang"))
		assert.Equal(t, 0.0, engine.Similarity("golang", "   "))
		assert.Equal(t, 0.0, engine.Similarity("", ""))
	})

	t.Run("Should return 0 for fully disjoint vocabularies", func(t *testing.T) {
		assert.Equal(t, 0.0, engine.Similarity("golang concurrency channels", "piano sonata allegro"))
	})

	t.Run("Should be symmetric", func(t *testing.T) {
		a := "machine learning pipelines with python"
		b := "python data pipelines"
		assert.InDelta(t, engine.Similarity(a, b), engine.Similarity(b, a), 1e-12)
	})

	t.Run("Should rank overlapping text above unrelated text", func(t *testing.T) {
		user := "python web development flask api"
		related := engine.Similarity(user, "flask api toolkit for python web apps")
		unrelated := engine.Similarity(user, "embedded firmware for microcontrollers")
		assert.Greater(t, related, unrelated)
	})

	t.Run("Should return 0 when all tokens are stop words", func(t *testing.T) {
		assert.Equal(t, 0.0, engine.Similarity("the and of", "golang channels"))
	})
}

func TestTopKeywords(t *testing.T) {
	engine := textsim.New(0)

	t.Run("Should rank the most frequent term first", func(t *testing.T) {
		keywords := engine.TopKeywords("redis redis redis cache", 10)
		assert.NotEmpty(t, keywords)
		assert.Equal(t, "redis", keywords[0].Term)
	})

	t.Run("Should return nil for empty text", func(t *testing.T) {
		assert.Nil(t, engine.TopKeywords("   ", 5))
	})

	t.Run("Should respect topN", func(t *testing.T) {
		keywords := engine.TopKeywords("alpha beta gamma delta epsilon", 2)
		assert.Len(t, keywords, 2)
	})

	t.Run("Should include bigrams", func(t *testing.T) {
		keywords := engine.TopKeywords("unit testing", 10)
		terms := make([]string, len(keywords))
		for i, kw := range keywords {
			terms[i] = kw.Term
		}
		assert.Contains(t, terms, "unit testing")
	})

	t.Run("Should break ties by first appearance", func(t *testing.T) {
		keywords := engine.TopKeywords("zebra apple", 10)
		assert.Equal(t, "zebra", keywords[0].Term)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("Should return 1 for identical vectors", func(t *testing.T) {
		v := []float64{0.3, 0.4, 0.5}
		assert.InDelta(t, 1.0, textsim.CosineSimilarity(v, v), 1e-12)
	})

	t.Run("Should return 0 for zero vectors", func(t *testing.T) {
		assert.Equal(t, 0.0, textsim.CosineSimilarity([]float64{0, 0}, []float64{1, 2}))
		assert.Equal(t, 0.0, textsim.CosineSimilarity(nil, []float64{1}))
	})

	t.Run("Should zero-pad mismatched lengths", func(t *testing.T) {
		sim := textsim.CosineSimilarity([]float64{1, 0, 0}, []float64{1})
		assert.InDelta(t, 1.0, sim, 1e-12)
	})

	t.Run("Should return 0 for orthogonal vectors", func(t *testing.T) {
		assert.Equal(t, 0.0, textsim.CosineSimilarity([]float64{1, 0}, []float64{0, 1}))
	})
}

func TestNormalizeWeights(t *testing.T) {
	t.Run("Should scale values to sum to 1", func(t *testing.T) {
		out := textsim.NormalizeWeights(map[string]float64{"Go": 3, "Python": 1})
		assert.InDelta(t, 0.75, out["Go"], 1e-9)
		assert.InDelta(t, 0.25, out["Python"], 1e-9)
	})

	t.Run("Should return empty map for empty input", func(t *testing.T) {
		assert.Empty(t, textsim.NormalizeWeights(nil))
	})

	t.Run("Should return all-zero maps unchanged", func(t *testing.T) {
		in := map[string]float64{"Go": 0}
		out := textsim.NormalizeWeights(in)
		assert.Equal(t, 0.0, out["Go"])
	})
}

func TestMergeWeighted(t *testing.T) {
	t.Run("Should combine sources by their weights", func(t *testing.T) {
		merged := textsim.MergeWeighted([]textsim.WeightedMap{
			{Weights: map[string]float64{"api": 1.0}, Weight: 0.4},
			{Weights: map[string]float64{"api": 0.5, "cli": 1.0}, Weight: 0.3},
		})
		assert.InDelta(t, 0.55, merged["api"], 1e-9)
		assert.InDelta(t, 0.3, merged["cli"], 1e-9)
	})

	t.Run("Should return empty map with no sources", func(t *testing.T) {
		assert.Empty(t, textsim.MergeWeighted(nil))
	})
}
