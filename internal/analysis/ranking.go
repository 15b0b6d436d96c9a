package analysis

import "sort"

// Rank orders results by signal class, strongest first, then by
// descending edge. Equal results keep their input order.
func Rank(results []*AnalysisResult) []*AnalysisResult {
	out := make([]*AnalysisResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := out[i].Signal.order(), out[j].Signal.order()
		if ci != cj {
			return ci < cj
		}
		return out[i].BestEdge > out[j].BestEdge
	})
	return out
}
