// Package hash provides keyed hashing for values that must be correlated
// without being disclosed, such as the email address carried by audit events.
package hash
