package blockinfo_header

import (
	"github.com/ipld/go-ipld-prime"
	log "github.com/sirupsen/logrus"

	blockinfo "github.com/vulcanize/eth-blockinfo"
)

// Resolved is the raw document value selected for one schema field
type Resolved struct {
	Field blockinfo.CanonicalField
	// Alias is the document key the value was found under, empty when defaulted
	Alias string
	// Node is nil when the field took its default
	Node ipld.Node
}

// Defaulted reports whether the field was absent and took its default value
func (r Resolved) Defaulted() bool {
	return r.Node == nil
}

// Resolve selects a value for every schema field, in schema order.
// Absent optional fields without a default are left out.
func Resolve(doc ipld.Node, schema blockinfo.Schema) ([]Resolved, error) {
	fields := schema.Fields()
	resolved := make([]Resolved, 0, len(fields))
	for _, f := range fields {
		alias, n, ok := f.Lookup(doc)
		switch {
		case ok:
			log.WithFields(log.Fields{"field": f.Name, "alias": alias}).Debug("resolved header field")
			resolved = append(resolved, Resolved{Field: f, Alias: alias, Node: n})
		case f.HasDefault:
			log.WithField("field", f.Name).Debug("header field absent, using default")
			resolved = append(resolved, Resolved{Field: f})
		case f.Required:
			return nil, &blockinfo.MissingFieldError{Field: f.Name, Aliases: f.Aliases}
		}
	}
	return resolved, nil
}
