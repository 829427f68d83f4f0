package http

// Headers maps canonical field names to single values. Inserting an
// existing name overwrites it.
type Headers struct{ underlying map[string]string }

func NewHeaders(initial map[string]string) Headers {
	clone := make(map[string]string, len(initial))
	for k, v := range initial {
		clone[toCanonicalFieldName(k)] = v
	}

	return Headers{underlying: clone}
}

// DefaultHeaders is the baseline identification set every client
// starts from. The contents are configuration data. Each entry can be
// overridden per request.
func DefaultHeaders() Headers {
	return NewHeaders(map[string]string{
		"User-Agent":                "clienter/1.0 (Go)",
		"Accept":                    "*/*",
		"Accept-Language":           "en-US",
		"Accept-Encoding":           "gzip",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Host":                      "localhost",
	})
}

func (h *Headers) Insert(key, value string) {
	if h.underlying == nil {
		h.underlying = make(map[string]string, 1)
	}
	h.underlying[toCanonicalFieldName(key)] = value
}

func (h *Headers) Get(key string) (value string, ok bool) {
	value, ok = h.underlying[toCanonicalFieldName(key)]
	return
}

func (h *Headers) Len() int { return len(h.underlying) }

// Fields returns all the key-value pairs in the header set. Iteration
// order is not stable across calls.
func (h *Headers) Fields() (fields [][2]string) {
	fields = make([][2]string, 0, len(h.underlying))
	for k, v := range h.underlying {
		fields = append(fields, [2]string{k, v})
	}

	return fields
}

// Combine merges two header sets into a new one, overlay winning on
// name conflicts. Neither input is modified.
func Combine(base, overlay Headers) Headers {
	clone := make(map[string]string, len(base.underlying)+len(overlay.underlying))
	for k, v := range base.underlying {
		clone[k] = v
	}
	for k, v := range overlay.underlying {
		clone[k] = v
	}

	return Headers{underlying: clone}
}

// toCanonicalFieldName uppercases the first letter of each dash
// separated word and lowercases the rest.
func toCanonicalFieldName(s string) string {
	const capitalDiff = 'a' - 'A'
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			c -= capitalDiff
		} else if !upper && 'A' <= c && c <= 'Z' {
			c += capitalDiff
		}
		b[i] = c
		upper = c == '-'
	}
	return string(b)
}
