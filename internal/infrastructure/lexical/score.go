package lexical

import "math"

// ComputeIDF builds the corpus-wide inverse-document-frequency table over the
// token sets of all pages. df counts distinct pages containing a token, not
// term frequency. The +1 smoothing sits inside the log argument, so every
// weight is strictly positive and finite even for a token present on every
// page.
func ComputeIDF(pageTokens [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, tokens := range pageTokens {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(pageTokens))
	if n == 0 {
		n = 1
	}
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = math.Log(n/float64(count) + 1)
	}
	return idf
}

// Score computes the TF-IDF dot product of a tokenized query against one
// page. Term frequency is normalized by page length (an empty page counts as
// length 1). Query tokens missing from the IDF table contribute with a
// neutral weight of 1.0 instead of scoring zero.
func Score(queryTokens, pageTokens []string, idf map[string]float64) float64 {
	pageLen := len(pageTokens)
	if pageLen == 0 {
		pageLen = 1
	}

	tf := make(map[string]int, len(pageTokens))
	for _, tok := range pageTokens {
		tf[tok]++
	}

	score := 0.0
	for _, qt := range queryTokens {
		weight, ok := idf[qt]
		if !ok {
			weight = 1.0
		}
		score += float64(tf[qt]) / float64(pageLen) * weight
	}
	return score
}
