// Package conv coerces loosely typed scalars into typed values.
//
// Coercers never fail: ToInt, ToFloat, ToDecimal, ToDateTime, ToDate and ToTime
// return ok == false, the null sentinel, for nil or unparseable input, and
// ToBool falls back to false. Numeric coercers accept locale specific
// thousands and decimal separators, ToDecimal quantizes with half up or half
// down rounding, and the date coercers repair impossible days such as 2/31/15.
//
// Converter binds records onto typed destinations (scalars, structs, slices)
// using the same coercion rules, reporting ErrNotConvertible instead of a
// silent zero when a value cannot be converted.
package conv
