package headers

import (
	"net/http"
	"sort"
	"strings"
)

// DefaultMediaType is assumed when a response carries no Content-Type header.
const DefaultMediaType = "application/octet-stream"

// ContentType is the parsed value of a Content-Type header. It is a value
// object: construct it once per response and do not mutate it afterwards.
type ContentType struct {
	// MediaType is the type/subtype token, lowercased and trimmed. Always set.
	MediaType string
	// Charset is the value of the charset parameter, lowercased. Empty if the
	// header carried no charset.
	Charset string
	// Params holds all parameters other than charset, names verbatim.
	Params map[string]string
}

// ParseContentType parses the raw value of a Content-Type header. An empty
// value yields the DefaultMediaType with no charset and no parameters.
func ParseContentType(headerValue string) (ContentType, error) {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" {
		return ContentType{MediaType: DefaultMediaType}, nil
	}

	parts := splitTopLevel(headerValue, ';', false)
	mediaType := strings.ToLower(strings.TrimSpace(parts[0]))
	if !isValidMediaType(mediaType) {
		return ContentType{}, errorf("invalid media type %q", strings.TrimSpace(parts[0]))
	}

	ct := ContentType{MediaType: mediaType}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found {
			return ContentType{}, errorf("parameter %q is not a name=value pair", part)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return ContentType{}, errorf("parameter %q has an empty name", part)
		}
		value, err := unquote(strings.TrimSpace(value))
		if err != nil {
			return ContentType{}, err
		}
		if strings.EqualFold(name, "charset") {
			// duplicate parameters: last occurrence wins
			ct.Charset = strings.ToLower(value)
			continue
		}
		if ct.Params == nil {
			ct.Params = map[string]string{}
		}
		ct.Params[name] = value
	}
	return ct, nil
}

// ContentTypeFromResponse looks up the Content-Type header of resp and
// delegates to ParseContentType. An absent header yields the default.
func ContentTypeFromResponse(resp *http.Response) (ContentType, error) {
	return ParseContentType(resp.Header.Get("Content-Type"))
}

// IsJSON reports whether the media type denotes a JSON body, either
// application/json itself or a +json structured syntax suffix.
func (c ContentType) IsJSON() bool {
	return c.MediaType == "application/json" || strings.HasSuffix(c.MediaType, "+json")
}

// CharsetOr returns the charset of the content type, or def if none was given.
func (c ContentType) CharsetOr(def string) string {
	if c.Charset != "" {
		return c.Charset
	}
	return strings.ToLower(def)
}

// String renders the content type back into header form. Parameter values
// containing separators are quoted. The output parses back into an equal
// ContentType.
func (c ContentType) String() string {
	var b strings.Builder
	b.WriteString(c.MediaType)
	if c.Charset != "" {
		b.WriteString("; charset=")
		b.WriteString(c.Charset)
	}
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString("; ")
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(quoteIfNeeded(c.Params[name]))
	}
	return b.String()
}

func isValidMediaType(s string) bool {
	typ, subtype, found := strings.Cut(s, "/")
	if !found || typ == "" || subtype == "" || strings.Contains(subtype, "/") {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}

func quoteIfNeeded(s string) string {
	if s != "" && !strings.ContainsAny(s, "\";,= \t\\") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
