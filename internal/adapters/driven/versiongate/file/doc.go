// Package file provides a version gate that keeps its marker in a text file
// next to the cache it guards.
//
// For a cache at <dir>/<name><suffix>, where suffix is the cache kind's
// extension, the marker lives at <dir>/<name>_version.txt and holds the
// application version that last saved the cache.
package file
