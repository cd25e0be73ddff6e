// Package schema validates discovery result payloads before decoding.
//
// The enrichment API contract is expressed as an embedded JSON Schema
// (draft-07) and enforced with gojsonschema. Validation runs after the
// envelope success gate and before the payload is decoded into model types,
// so type mismatches surface as named violations instead of decode errors.
//
// Design decision: The schema is deliberately permissive where the API is.
// Unknown keys pass, confidence is not clamped to [0,1], and JSON null is
// accepted wherever a field may be absent. Only the structural contract is
// enforced: entities need a name, signals need a type, and typed fields
// must match their declared type when present.
package schema
