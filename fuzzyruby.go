// Package fuzzyruby: go-to-definition and document-highlight for Ruby.
package fuzzyruby
