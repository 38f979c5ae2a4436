// Package time parses loosely formatted date and time text and translates
// strftime and ISO date formats into time layouts.
//
// Parser fills every component missing from the input with the matching
// component of an explicit default datetime, and separates impossible dates
// (ErrImpossibleDate) from text that is not a date (ErrUnparseable).
package time
