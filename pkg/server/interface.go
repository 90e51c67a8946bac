/*
Package server implements msgpack IPC for sentence suggestion services.

The protocol runs binary msgpack frames over stdin/stdout in a request
response model. Every request carries an ID the response echoes back plus an
action selector. Frames are processed synchronously in arrival order.

A suggestion request:

	{"id": "req_001", "action": "suggest", "q": "teh autocomplete", "l": 5}

is answered with ranked whole-sentence matches and the elapsed micros:

	{"id": "req_001", "e": [{"s": "...", "o": "rfc.txt", "sc": 32, "r": 1}], "c": 1, "t": 145}

The `words` action returns vocabulary completions for a prefix, `stats`
reports index counters, and `ping` answers with a status frame. Malformed or
unknown requests get an error frame with a status code; they never terminate
the loop.
*/
package server

// Request is the single incoming frame shape; unused fields stay empty.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// SuggestEntry is one ranked sentence in a suggest response.
type SuggestEntry struct {
	Sentence string  `msgpack:"s"`
	Origin   string  `msgpack:"o"`
	Score    float64 `msgpack:"sc"`
	Rank     int     `msgpack:"r"`
}

// SuggestResponse answers a suggest action.
type SuggestResponse struct {
	ID        string         `msgpack:"id"`
	Entries   []SuggestEntry `msgpack:"e"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// WordEntry is one vocabulary completion.
type WordEntry struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"c"`
}

// WordsResponse answers a words action.
type WordsResponse struct {
	ID    string      `msgpack:"id"`
	Words []WordEntry `msgpack:"ws"`
	Count int         `msgpack:"c"`
}

// StatsResponse answers a stats action with index counters.
type StatsResponse struct {
	ID        string `msgpack:"id"`
	Sentences int    `msgpack:"sentences"`
	Origins   int    `msgpack:"origins"`
	TrieNodes int    `msgpack:"trie_nodes"`
	TrieWords int    `msgpack:"trie_words"`
	Vocab     int    `msgpack:"vocab"`
}

// StatusResponse reports readiness and ping replies.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse reports a per-request failure.
type ErrorResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Error  string `msgpack:"error"`
	Status int    `msgpack:"status"`
}
