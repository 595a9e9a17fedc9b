package recommend

import (
	"fmt"
	"strings"
)

// FormatAlumniEvidence renders the fused database results for the prompt.
// Blocks follow the order the queries were submitted in; each query becomes
// a block with its documents indented as dash lines, and a query that failed
// renders its error marker instead so the model knows the evidence is
// thinner there.
func FormatAlumniEvidence(queries []string, documents map[string][]string, failed map[string]error) string {
	if len(queries) == 0 {
		return "No alumni data available."
	}

	var b strings.Builder
	for _, query := range queries {
		fmt.Fprintf(&b, "Query: %s\n", query)
		if err, ok := failed[query]; ok {
			fmt.Fprintf(&b, "  - Error processing query: %v\n", err)
		} else {
			for _, doc := range documents[query] {
				fmt.Fprintf(&b, "  - %s\n", doc)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatInternetEvidence renders the web answers as Query/Result pairs in
// question submission order. A question with no answer is omitted entirely.
func FormatInternetEvidence(questions []string, results map[string]string) string {
	var b strings.Builder
	for _, question := range questions {
		answer, ok := results[question]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "Query: %s\nResult: %s\n\n", question, answer)
	}

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return "No internet insights available."
	}
	return out
}
