package ner

// Word lists backing the rule recognizer. Lookups are on exact token text
// unless noted otherwise.

var abbreviations = map[string]bool{
	"Inc": true, "Corp": true, "Ltd": true, "Co": true, "Bros": true, "Jr": true, "Sr": true,
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Prof": true, "St": true,
	"Jan": true, "Feb": true, "Mar": true, "Apr": true, "Jun": true, "Jul": true,
	"Aug": true, "Sep": true, "Sept": true, "Oct": true, "Nov": true, "Dec": true,
}

var months = map[string]bool{
	"January": true, "February": true, "March": true, "April": true, "May": true, "June": true,
	"July": true, "August": true, "September": true, "October": true, "November": true, "December": true,
	"Jan": true, "Feb": true, "Mar": true, "Apr": true, "Jun": true, "Jul": true, "Aug": true,
	"Sep": true, "Sept": true, "Oct": true, "Nov": true, "Dec": true,
}

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// relativeDays are matched case-insensitively.
var relativeDays = map[string]bool{
	"today": true, "yesterday": true, "tomorrow": true,
}

var moneyScales = map[string]bool{
	"thousand": true, "million": true, "billion": true, "trillion": true,
	"mn": true, "bn": true, "M": true, "B": true,
}

var currencyWords = map[string]bool{
	"dollars": true, "euros": true, "pounds": true, "yen": true, "rupees": true,
}

var corporateSuffixes = map[string]bool{
	"Inc": true, "Incorporated": true, "Corp": true, "Corporation": true, "Co": true,
	"Company": true, "Ltd": true, "Limited": true, "LLC": true, "LLP": true, "PLC": true,
	"AG": true, "SA": true, "SE": true, "NV": true, "GmbH": true, "Group": true,
	"Holdings": true, "Technologies": true, "Systems": true, "Labs": true, "Bank": true,
	"Partners": true, "Capital": true, "Ventures": true, "Foundation": true,
	"University": true, "Institute": true, "Association": true, "Agency": true,
	"Markets": true, "Research": true, "Networks": true, "Therapeutics": true,
	"Pharmaceuticals": true,
}

var honorifics = map[string]bool{
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Prof": true, "Sir": true, "Dame": true,
}

// nameConnectors may sit inside a proper-noun run ("Bank of America").
var nameConnectors = map[string]bool{
	"of": true, "&": true, "de": true, "du": true, "van": true, "von": true, "for": true,
}

// placePrepositions hint that the following proper noun is a place.
var placePrepositions = map[string]bool{
	"in": true, "from": true, "across": true, "near": true,
}

// commonWords are matched lowercased. A capitalized common word never starts
// or extends a proper-noun run, which keeps headline-case titles from turning
// into one long entity.
var commonWords = toSet(
	"a", "an", "the", "this", "that", "these", "those", "it", "its", "we", "our", "you", "your",
	"i", "he", "she", "they", "their", "his", "her", "us", "them",
	"and", "or", "but", "nor", "so", "yet", "if", "as", "at", "by", "for", "from", "in", "into",
	"on", "onto", "of", "off", "out", "over", "to", "up", "with", "without", "via", "per", "amid",
	"after", "before", "about", "above", "below", "under", "between", "through", "during", "against",
	"is", "are", "was", "were", "be", "been", "being", "has", "have", "had", "do", "does", "did",
	"will", "would", "can", "could", "should", "may", "might", "must", "shall",
	"not", "no", "new", "more", "most", "less", "all", "any", "some", "each", "every", "other",
	"how", "why", "what", "when", "where", "who", "which", "while",
	"announces", "announced", "announce", "launches", "launched", "launch", "unveils", "unveiled",
	"reports", "reported", "report", "acquires", "acquired", "acquire", "acquisition",
	"expands", "expanded", "expansion", "partners", "partnership", "partnering", "joins", "joined",
	"names", "named", "appoints", "appointed", "introduces", "introduced", "releases", "released",
	"completes", "completed", "signs", "signed", "wins", "won", "selects", "selected",
	"celebrates", "opens", "opened", "invests", "investment", "raises", "raised", "secures", "secured",
	"global", "market", "first", "quarter", "results", "financial", "annual", "year",
	"update", "updates", "news", "press", "release", "deal", "agreement", "strategic", "growth",
	"says", "said", "see", "top", "best", "latest", "major", "leading", "largest",
	"ceo", "cfo", "president", "chairman", "chief", "officer", "executive",
	"here", "there", "now", "then", "also", "just", "only", "than", "too", "very",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
