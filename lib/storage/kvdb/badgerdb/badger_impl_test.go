package badgerdb

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/xuperchain/xedition/lib/storage/kvdb"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// 产生随机字符串
func RandBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return b
}

func makeDB(dir string) (kvdb.Database, error) {
	kvParam := &kvdb.KVParameter{
		DBPath:                filepath.Join(dir, "badger"),
		KVEngineType:          kvdb.KVEngineTypeBadger,
		MemCacheSize:          128,
		FileHandlersCacheSize: 1024,
	}
	return kvdb.CreateKVInstance(kvParam)
}

func TestBadgerGetPut(t *testing.T) {
	db, err := makeDB(t.TempDir())
	if err != nil {
		t.Fatalf("NewKVDBInstance error: %s", err)
	}
	defer db.Close()

	if _, err := db.Get([]byte("absent")); !kvdb.ErrNotFound(err) {
		t.Fatalf("expect not found, got %v", err)
	}
	if err := db.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	v, err := db.Get([]byte("k"))
	if err != nil || string(v) != "v" {
		t.Fatalf("unexpected get result %s %v", v, err)
	}
	ok, err := db.Has([]byte("k"))
	if err != nil || !ok {
		t.Fatalf("expect key to exist, %v", err)
	}
	if err := db.Delete([]byte("k")); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get([]byte("k")); !kvdb.ErrNotFound(err) {
		t.Fatalf("expect not found after delete, got %v", err)
	}
}

func TestBadgerBatchAndIterator(t *testing.T) {
	db, err := makeDB(t.TempDir())
	if err != nil {
		t.Fatalf("NewKVDBInstance error: %s", err)
	}
	defer db.Close()

	batch := db.NewBatch()
	for i := 0; i < 5; i++ {
		batch.Put([]byte(fmt.Sprintf("a/%d", i)), []byte(fmt.Sprintf("%d", i)))
	}
	batch.Put([]byte("b/0"), []byte("x"))
	if err := batch.Write(); err != nil {
		t.Fatal(err)
	}

	iter := db.NewIteratorWithPrefix([]byte("a/"))
	count := 0
	for iter.Next() {
		count++
	}
	iter.Release()
	if count != 5 {
		t.Fatalf("expect 5 keys, got %d", count)
	}

	iter = db.NewIteratorWithRange([]byte("a/1"), []byte("a/3"))
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Release()
	if len(keys) != 2 || keys[0] != "a/1" || keys[1] != "a/2" {
		t.Fatalf("unexpected range %v", keys)
	}

	table := kvdb.NewTable(db, "b/")
	v, err := table.Get([]byte("0"))
	if err != nil || string(v) != "x" {
		t.Fatalf("unexpected table get %s %v", v, err)
	}
	iter = table.NewIteratorWithRange(nil, nil)
	keys = keys[:0]
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Release()
	if len(keys) != 1 || keys[0] != "0" {
		t.Fatalf("unexpected table keys %v", keys)
	}
}

func BenchmarkBadgerBatch_Put(b *testing.B) {
	db, err := makeDB(b.TempDir())
	if err != nil {
		b.Errorf("NewKVDBInstance error: %s", err)
		return
	}
	defer db.Close()

	for i := 0; i < b.N; i++ {
		batch := db.NewBatch()
		for j := 0; j < 5; j++ {
			batch.Put(RandBytes(64), RandBytes(1024))
		}
		batch.Write()
	}
}

func BenchmarkBadgerBatch_Get(b *testing.B) {
	db, err := makeDB(b.TempDir())
	if err != nil {
		b.Errorf("NewKVDBInstance error: %s", err)
		return
	}
	defer db.Close()

	key := RandBytes(64)
	value := RandBytes(1024)
	db.Put(key, value)
	for i := 0; i < b.N; i++ {
		db.Get(key)
	}
}
