// Package chunking prepares long input text for a language model with a
// bounded context. Split breaks text into ordered, length-bounded chunks that
// follow paragraph and sentence boundaries where it can, and IsComplex flags
// chunks that use advanced clinical vocabulary.
package chunking
