// Package codec encodes and decodes attestation payloads against the field
// list of a schema using the Solidity ABI.
//
// Payloads are produced in two shapes. Encode concatenates each field as an
// independent ABI parameter, which is what this module writes. EncodeTuple
// wraps all fields in a single tuple, which is what some other producers
// write. Decode accepts either shape: it tries the tuple shape first and
// falls back to the flat shape, mapping values back to field names by
// position.
//
// For schemas made up only of static types both shapes are byte for byte
// identical.
package codec
