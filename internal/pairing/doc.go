// Package pairing turns per-record entity sets into aggregation rows.
//
// Single rows credit each entity with the record's value. Pair rows credit
// every unordered two-entity combination with the full value as well, so a
// record with three entities contributes its value to three pairs. Pair
// totals therefore double count views of multi-entity videos; callers that
// need a non-inflated ranking use DuoTotals, which only considers records
// with exactly two entities.
package pairing
