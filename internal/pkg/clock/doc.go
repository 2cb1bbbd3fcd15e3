// Package clock provides a tiny time abstraction.
//
// Event timestamps are taken from a Clocker so tests can pin them with Fixed.
package clock
