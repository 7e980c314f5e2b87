package library

import (
	"crypto/sha1"
	"database/sql"
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bodgit/fumen"
	_ "github.com/mattn/go-sqlite3"
)

// DB stores documents by name. Names that refer to identical documents share
// the same stored encoding.
type DB struct {
	db *sql.DB
}

// Entry describes a stored document.
type Entry struct {
	Name  string
	Pages int
}

// NewDB opens, creating if necessary, the database in file.
func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS document (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data TEXT NOT NULL, pages INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS entry (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, document_id INTEGER NOT NULL, FOREIGN KEY(document_id) REFERENCES document(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) addDocument(f *fumen.Fumen) (int64, error) {
	data, err := f.Encode()
	if err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum([]byte(data)))

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM document WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO document (sha1, data, pages) VALUES (?, ?, ?)", sha, data, len(f.Pages))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Add stores f under name, replacing any existing document with that name.
func (db *DB) Add(name string, f *fumen.Fumen) error {
	id, err := db.addDocument(f)
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO entry (name, document_id) VALUES (?, ?)", name, id); err != nil {
		return err
	}

	return db.prune()
}

// Get returns the document stored under name, or nil if there is none.
func (db *DB) Get(name string) (*fumen.Fumen, error) {
	var data string
	switch err := db.db.QueryRow("SELECT d.data FROM entry AS e JOIN document AS d ON e.document_id = d.id WHERE e.name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return fumen.Decode(data)
	default:
		return nil, err
	}
}

// List returns every stored name in alphabetical order.
func (db *DB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT e.name, d.pages FROM entry AS e JOIN document AS d ON e.document_id = d.id ORDER BY e.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Pages); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Delete removes the document stored under name. It is not an error if
// there is no such document.
func (db *DB) Delete(name string) error {
	if _, err := db.db.Exec("DELETE FROM entry WHERE name = ?", name); err != nil {
		return err
	}
	return db.prune()
}

// Remove any documents no longer referred to by name
func (db *DB) prune() error {
	if _, err := db.db.Exec("DELETE FROM document WHERE id NOT IN (SELECT document_id FROM entry)"); err != nil {
		return err
	}
	return nil
}

type xmlLibrary struct {
	XMLName xml.Name   `xml:"Library"`
	Entries []xmlEntry `xml:"Entry"`
}

type xmlEntry struct {
	XMLName xml.Name    `xml:"Entry"`
	Name    string      `xml:"Name"`
	Fumen   fumen.Fumen `xml:"Data"`
}

// ImportXML adds every document found in file. Existing documents with the
// same names are replaced.
func (db *DB) ImportXML(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}

	var xmlDB xmlLibrary
	if err := xml.Unmarshal(b, &xmlDB); err != nil {
		return err
	}

	for _, e := range xmlDB.Entries {
		if err := db.Add(e.Name, &e.Fumen); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
	}

	return nil
}

// ExportXML writes every stored document to file.
func (db *DB) ExportXML(file string) error {
	entries, err := db.List()
	if err != nil {
		return err
	}

	var xmlDB xmlLibrary
	for _, e := range entries {
		f, err := db.Get(e.Name)
		if err != nil {
			return err
		}
		xmlDB.Entries = append(xmlDB.Entries, xmlEntry{
			Name:  e.Name,
			Fumen: *f,
		})
	}

	b, err := xml.MarshalIndent(&xmlDB, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(file, append([]byte(xml.Header), append(b, '\n')...), 0666)
}
