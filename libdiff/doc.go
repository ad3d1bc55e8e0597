// Package libdiff describes the difference between two versions of a value.
//
// Delta computes an RFC 7386 JSON merge patch taking the old value of a
// change to the new one, and ApplyDelta applies such a patch. Text renders a
// character level diff of two serialized values.
package libdiff
