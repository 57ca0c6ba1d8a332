// Package watch implements driven.FileWatcher on fsnotify.
//
// Watches are placed on the parent directories of the requested files so
// that editors which save by renaming a temporary file are still noticed.
package watch
