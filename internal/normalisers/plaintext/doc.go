// Package plaintext provides a Normaliser for plain text sources.
package plaintext
