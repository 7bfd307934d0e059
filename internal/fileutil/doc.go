// Package fileutil commits files atomically.
//
// Content is written to a uniquely named temporary file beside the
// destination, flushed to disk, and renamed over the destination. A failure
// at any step removes the temporary file and leaves the destination as it
// was. Writers can additionally serialize on an advisory lock file.
package fileutil
