/*
Package library maintains a named collection of fumen documents in a SQLite
database.

Documents can be added individually, imported from and exported to XML, or
gathered by scanning a directory tree of text files containing one encoded
document per line.
*/
package library

import "log"

// Library combines a database with the logger used when scanning.
type Library struct {
	db     *DB
	logger *log.Logger
}

// New returns a Library backed by db.
func New(db *DB, logger *log.Logger) *Library {
	return &Library{
		db:     db,
		logger: logger,
	}
}
