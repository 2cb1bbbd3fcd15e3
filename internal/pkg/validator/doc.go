// Package validator checks usecase inputs and module dependency structs.
//
// Failures come back as V10ValidationError, keyed by snake_case field name and
// carrying English messages that use the json name of the field.
package validator
