package terms

// stopwords are dropped by Normalize. The empty string is included so that
// splitting artefacts never become terms.
var stopwords = map[string]struct{}{
	"": {}, "a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "am": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "but": {}, "by": {}, "can": {}, "could": {}, "did": {},
	"do": {}, "does": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "him": {}, "his": {}, "i": {}, "if": {},
	"in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "me": {}, "my": {},
	"no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "our": {}, "she": {},
	"so": {}, "than": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"to": {}, "too": {}, "us": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "which": {}, "who": {}, "will": {}, "with": {}, "would": {},
	"you": {}, "your": {},
}

// IsStopword reports whether Normalize drops word.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
