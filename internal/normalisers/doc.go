// Package normalisers provides implementations of the Normaliser interface
// for the editor source formats. Each normaliser knows how to turn a source
// file with a specific extension into text and a Moodle format code.
//
// Normalisers are registered with the Registry at startup.
package normalisers
