// Package rank compares one language's phoneme inventory against every
// other language and returns the closest ones.
//
// Results are sorted by score, highest first, with the language code as the
// tie-break, so identical inputs always produce identical rankings. The query
// language never appears in its own ranking. An unknown query code is scored
// as an empty inventory: scorers that define a sentinel return it for every
// candidate and the engine reports RankUnknownLanguage with suggestions.
//
// When script distributions are available a ranking can carry the script
// distance of each candidate as extra metadata. It never changes the order.
package rank
