package store

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Store-level errors. All four taxonomy classes propagate to the caller
// unchanged: the store never retries or recovers locally.
var (
	ErrMalformedKey    = errors.New("malformed api key")
	ErrUnknownResource = errors.New("unknown api resource")
	ErrNotFound        = errors.New("record not found")
)

// Key is a parsed logical key. A zero ID means the collection form, except
// for singleton resources which always resolve to their fixed row and
// reject an explicit id segment.
type Key struct {
	Resource Resource
	ID       uint
	Params   url.Values
}

// ParseKey parses a logical key of the form "/api/<resource>[/<id>]"
// optionally followed by "?<param>=<value>[&...]". The "/api/" prefix is
// optional on input; Canonical always includes it.
func ParseKey(raw string) (*Key, error) {
	path, query, _ := strings.Cut(raw, "?")
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "api/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
	}

	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
	}

	key := &Key{Resource: Resource(parts[0]), Params: url.Values{}}
	if !KnownResource(parts[0]) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, raw)
	}

	if len(parts) == 2 {
		// Singleton resources have no addressable id
		if resources[key.Resource].singleton {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
		}
		id, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
		}
		key.ID = uint(id)
	}

	if query != "" {
		params, err := url.ParseQuery(query)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
		}
		key.Params = params
	}

	return key, nil
}

// Canonical returns the normalized form of the key: "/api/" prefix and
// query parameters in sorted order, so equivalent keys cache identically.
func (k *Key) Canonical() string {
	var b strings.Builder
	b.WriteString("/api/")
	b.WriteString(string(k.Resource))
	if k.ID != 0 {
		b.WriteString("/")
		b.WriteString(strconv.FormatUint(uint64(k.ID), 10))
	}
	if len(k.Params) > 0 {
		b.WriteString("?")
		b.WriteString(k.Params.Encode())
	}
	return b.String()
}
