// Package format names the text formats values can be rendered in.
package format
