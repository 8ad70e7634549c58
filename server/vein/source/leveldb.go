package source

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/util"
	"github.com/df-mc/oreveins/server/vein/doc"
)

// keyPrefix prefixes the keys of definitions in a LevelDB database.
const keyPrefix = "vein/"

// LevelDB is a Source storing definitions as JSON values in a LevelDB database.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens the LevelDB database at the path passed, creating it if it does not exist.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{Compression: opt.SnappyCompression})
	if err != nil {
		return nil, errors.Wrapf(err, "open vein database %v", path)
	}
	return &LevelDB{db: db}, nil
}

// Put stores a definition under the id passed, replacing any definition stored under it before.
func (l *LevelDB) Put(id string, d doc.Document) error {
	b, err := json.Marshal(d)
	if err != nil {
		return errors.Wrapf(err, "encode vein %v", id)
	}
	return l.db.Put([]byte(keyPrefix+id), b, nil)
}

// Get looks up the definition stored under an id. The bool returned is false if there is none.
func (l *LevelDB) Get(id string) (doc.Document, bool, error) {
	b, err := l.db.Get([]byte(keyPrefix+id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	d, err := Decode(b, ".json")
	if err != nil {
		return nil, false, errors.Wrapf(err, "vein %v", id)
	}
	return d, true, nil
}

// Delete removes the definition stored under an id. Deleting an id that is not stored is not an error.
func (l *LevelDB) Delete(id string) error {
	return l.db.Delete([]byte(keyPrefix+id), nil)
}

// Import stores all documents passed in a single batch.
func (l *LevelDB) Import(docs map[string]doc.Document) error {
	batch := new(leveldb.Batch)
	for id, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			return errors.Wrapf(err, "encode vein %v", id)
		}
		batch.Put([]byte(keyPrefix+id), b)
	}
	return l.db.Write(batch, nil)
}

// Documents ...
func (l *LevelDB) Documents() (map[string]doc.Document, error) {
	docs := make(map[string]doc.Document)
	var errs []error

	it := l.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer it.Release()
	for it.Next() {
		id := strings.TrimPrefix(string(it.Key()), keyPrefix)
		d, err := Decode(it.Value(), ".json")
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "vein %v", id))
			continue
		}
		docs[id] = d
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate vein database")
	}
	return docs, errors.Join(errs...)
}

// Close closes the database.
func (l *LevelDB) Close() error {
	return l.db.Close()
}
