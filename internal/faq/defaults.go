package faq

// defaultStopWords are high-frequency function words that carry no signal
// for question matching.
func defaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "is", "are", "am", "be", "to", "of", "in",
		"on", "at", "for", "with", "do", "does", "i", "you", "we",
		"they", "there", "can", "will", "it", "what", "how", "when", "where",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// DefaultSynonyms is a small hand-authored table tuned for event FAQs
// (registration, pricing, scheduling, venue). Symmetric by construction.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"sign":     {"register", "signup", "join", "enroll"},
		"register": {"sign", "signup", "join", "enroll"},
		"signup":   {"sign", "register", "join", "enroll"},
		"pay":      {"fee", "cost", "price", "money", "charge"},
		"fee":      {"pay", "cost", "price", "money", "charge"},
		"cost":     {"pay", "fee", "price", "money", "charge"},
		"start":    {"schedule", "time", "begin", "when"},
		"time":     {"schedule", "start", "when"},
		"when":     {"time", "schedule", "start"},
		"where":    {"venue", "location", "place"},
		"venue":    {"where", "location", "place"},
		"location": {"where", "venue", "place"},
	}
}
