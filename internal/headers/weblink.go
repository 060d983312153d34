package headers

import (
	"net/http"
	"sort"
	"strings"
)

// Common link relations used for pagination.
const (
	RelNext  = "next"
	RelPrev  = "prev"
	RelFirst = "first"
	RelLast  = "last"
)

// WebLink is a single link-value from a Link header.
type WebLink struct {
	// Target is the URL between the angle brackets, verbatim.
	Target string
	// Relation is the value of the rel parameter, lowercased.
	Relation string
	// Attributes holds all link-params other than rel, names verbatim.
	Attributes map[string]string
}

// WebLinkHeader is the ordered sequence of links parsed from a Link header.
// Entries keep the order they appeared in; the same relation may occur more
// than once.
type WebLinkHeader []WebLink

// ParseWebLinks parses the raw value of a Link header (RFC 8288). An empty
// value yields an empty header. A link-value without a rel parameter
// contributes no entry; pagination only acts on recognized relations.
func ParseWebLinks(headerValue string) (WebLinkHeader, error) {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" {
		return nil, nil
	}

	var links WebLinkHeader
	for _, segment := range splitTopLevel(headerValue, ',', true) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		link, hasRel, err := parseLinkValue(segment)
		if err != nil {
			return nil, err
		}
		if hasRel {
			links = append(links, link)
		}
	}
	return links, nil
}

// WebLinksFromResponse collects all Link header values of resp and delegates
// to ParseWebLinks. An absent header yields an empty result.
func WebLinksFromResponse(resp *http.Response) (WebLinkHeader, error) {
	return ParseWebLinks(strings.Join(resp.Header.Values("Link"), ", "))
}

// Rel returns the first link carrying the given relation (matched
// case-insensitively) and whether one was found.
func (h WebLinkHeader) Rel(relation string) (WebLink, bool) {
	relation = strings.ToLower(relation)
	for _, link := range h {
		if link.Relation == relation {
			return link, true
		}
	}
	return WebLink{}, false
}

// String renders the header back into Link header form. The output parses
// back into an equal WebLinkHeader.
func (h WebLinkHeader) String() string {
	parts := make([]string, 0, len(h))
	for _, link := range h {
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(link.Target)
		b.WriteString(`>; rel="`)
		b.WriteString(link.Relation)
		b.WriteByte('"')
		names := make([]string, 0, len(link.Attributes))
		for name := range link.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString("; ")
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(quoteIfNeeded(link.Attributes[name]))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}

func parseLinkValue(segment string) (WebLink, bool, error) {
	if segment[0] != '<' {
		return WebLink{}, false, errorf("link value %q does not start with <", segment)
	}
	end := strings.IndexByte(segment, '>')
	if end < 0 {
		return WebLink{}, false, errorf("link value %q has no closing >", segment)
	}

	link := WebLink{Target: segment[1:end]}
	hasRel := false
	for _, param := range splitTopLevel(segment[end+1:], ';', false) {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}
		name, value, found := strings.Cut(param, "=")
		if !found {
			return WebLink{}, false, errorf("link-param %q is not a name=value pair", param)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return WebLink{}, false, errorf("link-param %q has an empty name", param)
		}
		value, err := unquote(strings.TrimSpace(value))
		if err != nil {
			return WebLink{}, false, err
		}
		if strings.EqualFold(name, "rel") {
			link.Relation = strings.ToLower(value)
			hasRel = true
			continue
		}
		if link.Attributes == nil {
			link.Attributes = map[string]string{}
		}
		link.Attributes[name] = value
	}
	return link, hasRel, nil
}
