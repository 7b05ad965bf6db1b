// Package brokers is the declarative catalog of partner manifest formats.
//
// Each file registers the templates for one partner category from init().
// Templates are pure data: column headers as the partner exports them, the
// canonical attribute each column maps onto, and whether the partner
// guarantees a value. Supporting a new partner means adding a registration
// here and nothing else; the parser, mapper, and validator are generic over
// templates.
//
// Columns with an empty Target are deliberate: they ride along in the raw
// snapshot for operator reference but never reach the canonical row.
package brokers
