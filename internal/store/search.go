package store

import "strings"

// LikeEscape is the escape character used in LIKE patterns built by
// ContainsPattern. Queries must declare it with ESCAPE '\'.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching any value that contains term
// literally. Case folding is left to the query, which applies the same SQL
// function to the column and the pattern.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}

// Matches reports whether text contains term under the same rules the SQL
// backends apply. It is used by in-memory stores.
func Matches(text, term string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.Contains(text, term)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}
