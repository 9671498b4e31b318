package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// scoring
	ScoreEmptyInventory Code = 1001
	ScoreMissingFeature Code = 1002

	// ranking
	RankUnknownLanguage Code = 2001
	RankNoCandidates    Code = 2002

	// clustering
	ScriptSmallCorpus       Code = 3001
	ScriptMissingDist       Code = 3002
	ScriptEmptyDistribution Code = 3003

	// loading
	IOMalformedRow Code = 4001
	IOCacheStale   Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown condition",
	ScoreEmptyInventory:     "Empty phoneme inventory",
	ScoreMissingFeature:     "Phoneme has no distinctive features",
	RankUnknownLanguage:     "Unknown language code",
	RankNoCandidates:        "No candidate languages",
	ScriptSmallCorpus:       "Corpus below minimum size",
	ScriptMissingDist:       "No character distribution for language",
	ScriptEmptyDistribution: "Character distribution is empty",
	IOMalformedRow:          "Malformed input row",
	IOCacheStale:            "Distribution cache is stale",
}

// ID returns the stable identifier, e.g. "SCO1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RNK%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return fmt.Sprintf("E%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
