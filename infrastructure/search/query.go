package search

import (
	"strconv"
	"strings"
)

// Query is a parsed search input. Flags follow the terms:
// "pizza party --lang en --limit 5".
type Query struct {
	RawInput string
	Terms    string
	Lang     string
	Limit    int
}

// ParseQuery extracts the flags and keeps the rest as match terms.
// Unknown flags and bad values are dropped.
func ParseQuery(input string) Query {
	query := Query{RawInput: input}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "lang":
				query.Lang = strings.ToLower(val)
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++
			continue
		}
		textTerms = append(textTerms, part)
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
