// Package typst implements driven.DocumentCompiler by running the typst CLI.
//
// Documents are compiled with the experimental HTML export and queried with
// "typst query", which prints the selected metadata values as JSON.
package typst
