package heuristic

// stopwords are dropped during keyword extraction; they carry no
// discriminative value.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {}, "my": {},
	"your": {}, "his": {}, "hers": {}, "our": {}, "their": {}, "am": {},
	"get": {}, "got": {}, "very": {}, "really": {}, "just": {}, "so": {},
	"now": {}, "here": {}, "there": {}, "where": {}, "when": {}, "what": {},
	"how": {}, "why": {}, "who": {}, "which": {}, "than": {}, "too": {},
	"also": {}, "then": {},
}

// stopwordsCompact is the reduced set used by the Emergency variant.
var stopwordsCompact = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// IsStopword reports whether w is in the full stopword set. Exported for
// keyword candidate filtering in the full model tier.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
