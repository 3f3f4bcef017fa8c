package communet

import (
	"fmt"
	"net/url"
	"strings"
)

type nodeRefKind int

const (
	nodeRefByID nodeRefKind = iota
	nodeRefByURL
	nodeRefByCollection
)

// NodeRef identifies a structure node by ID, by view URL, or by an
// already-fetched collection item. It is resolved to a canonical node ID once
// at the API boundary; the request layer only ever sees IDs.
type NodeRef struct {
	kind       nodeRefKind
	id         string
	url        string
	collection map[string]interface{}
}

// NodeByID references a node by its display ID.
func NodeByID(id string) NodeRef {
	return NodeRef{kind: nodeRefByID, id: id}
}

// NodeByURL references a node by its community view URL, e.g.
// "https://community.example.com/t5/my-board/bd-p/my-board".
func NodeByURL(nodeURL string) NodeRef {
	return NodeRef{kind: nodeRefByURL, url: nodeURL}
}

// NodeByCollection references a node by a previously fetched item object that
// carries an "id" field.
func NodeByCollection(item map[string]interface{}) NodeRef {
	return NodeRef{kind: nodeRefByCollection, collection: item}
}

// Resolve returns the canonical node ID.
func (r NodeRef) Resolve() (string, error) {
	switch r.kind {
	case nodeRefByID:
		if r.id == "" {
			return "", ErrNodeRefUnresolvable
		}

		return r.id, nil

	case nodeRefByURL:
		return nodeIDFromURL(r.url)

	case nodeRefByCollection:
		id, ok := r.collection["id"]
		if !ok {
			return "", ErrEmptyCollection
		}

		resolved := stringifyScalar(id)
		if resolved == "" {
			return "", ErrEmptyCollection
		}

		return resolved, nil

	default:
		return "", ErrNodeRefUnresolvable
	}
}

// nodeIDFromURL extracts the node ID from a community view URL. Node URLs end
// with a type marker segment followed by the ID (".../bd-p/<id>",
// ".../ct-p/<id>", ".../gh-p/<id>").
func nodeIDFromURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing node URL: %w", err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return "", ErrNodeRefUnresolvable
	}

	return segments[len(segments)-1], nil
}
