// Package normalisers converts raw source payloads into the canonical
// indexed item shape. Each normaliser knows the entity kinds of one
// source system.
package normalisers
