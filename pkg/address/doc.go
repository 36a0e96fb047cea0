// Package address defines the hierarchical CSC coordinate used throughout the monitor.
//
// A CSC hardware element is located by up to six coordinates:
//
//	side → station → ring → chamber → layer → element
//
// where element is a sub-chamber unit such as a front-end board (CFEB) or a
// high-voltage segment. Not every use needs every coordinate: summary bins are
// keyed by partial addresses (a side, a station within a side, ...), dead
// hardware masks usually stop at chamber level, while a fill during event
// processing carries a fully specified chamber address.
//
// # Partial Addresses
//
// An Address records which coordinates are set. Builders set the value and
// its flag together:
//
//	a := address.New().WithSide(1).WithStation(2)
//	c := address.Chamber(1, 2, 1, 17)
//
// Unset coordinates take no part in labeling or matching.
//
// # Labels
//
// Label renders only the set coordinates, in fixed order:
//
//	CSC_SidePlus_Station02_Ring01_Chamber17
//
// Two addresses with the same set coordinates and values always produce the
// same label; addresses with different coordinate sets never do.
//
// # Matching
//
// A pattern matches a candidate when every coordinate set in the pattern is
// also set in the candidate with an equal value. Coordinates the pattern
// leaves unset are wildcards.
package address
