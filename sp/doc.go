// Package sp defines the schema and attestation data model shared by the
// on-chain and off-chain clients.
//
// A Schema declares an ordered list of typed fields. Field order is
// significant: it defines the positional ABI encoding of every Attestation
// made against the Schema. Field names within a Schema are unique.
//
// Identifiers assigned by the contract are uint64 values and are always
// surfaced as fixed width hex strings, see FormatID and ParseID.
package sp
