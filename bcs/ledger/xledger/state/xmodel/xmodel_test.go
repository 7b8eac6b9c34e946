package xmodel

import (
	"path/filepath"
	"testing"

	kledger "github.com/xuperchain/xedition/kernel/ledger"
	"github.com/xuperchain/xedition/lib/storage/kvdb"
	_ "github.com/xuperchain/xedition/lib/storage/kvdb/badgerdb"
	_ "github.com/xuperchain/xedition/lib/storage/kvdb/leveldb"
)

func openXModel(t *testing.T, engine string) *XModel {
	db, err := kvdb.CreateKVInstance(&kvdb.KVParameter{
		DBPath:                filepath.Join(t.TempDir(), engine),
		KVEngineType:          engine,
		MemCacheSize:          16,
		FileHandlersCacheSize: 16,
	})
	if err != nil {
		t.Fatal(err)
	}
	model, err := NewXModel(db, nil)
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestXModel(t *testing.T) {
	for _, engine := range []string{kvdb.KVEngineTypeLDB, kvdb.KVEngineTypeBadger} {
		t.Run(engine, func(t *testing.T) {
			model := openXModel(t, engine)
			defer model.Close()

			vd, err := model.Get("edition", []byte("config"))
			if err != nil {
				t.Fatal(err)
			}
			if vd.RefTxid != nil || GetVersion(vd) != "" {
				t.Fatalf("expect empty versioned data, got %+v", vd)
			}

			err = model.Commit([]byte("tx1"), []*kledger.PureData{
				{Bucket: "edition", Key: []byte("config"), Value: []byte("{}")},
				{Bucket: "edition", Key: []byte("token_count"), Value: []byte("0")},
				{Bucket: "editions", Key: []byte("x"), Value: []byte("other")},
				{Bucket: TransientBucket, Key: []byte("e"), Value: []byte("e")},
			})
			if err != nil {
				t.Fatal(err)
			}
			vd, err = model.Get("edition", []byte("config"))
			if err != nil {
				t.Fatal(err)
			}
			if GetVersion(vd) != MakeVersion([]byte("tx1"), 0) || string(vd.PureData.Value) != "{}" {
				t.Fatalf("unexpected versioned data %+v", vd)
			}

			iter, err := model.Select("edition", nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			var keys []string
			for iter.Next() {
				keys = append(keys, string(iter.Key()))
			}
			if err := iter.Error(); err != nil {
				t.Fatal(err)
			}
			iter.Close()
			if len(keys) != 2 || keys[0] != "edition/config" || keys[1] != "edition/token_count" {
				t.Fatalf("unexpected keys %v", keys)
			}

			err = model.Commit([]byte("tx2"), []*kledger.PureData{
				{Bucket: "edition", Key: []byte("config"), Value: []byte(DelFlag)},
			})
			if err != nil {
				t.Fatal(err)
			}
			vd, err = model.Get("edition", []byte("config"))
			if err != nil {
				t.Fatal(err)
			}
			if vd.RefTxid != nil {
				t.Fatal("expect deleted key to read as empty")
			}

			ok, err := model.HasTx([]byte("tx2"))
			if err != nil || !ok {
				t.Fatalf("expect tx2 to be recorded, %v", err)
			}
			ok, err = model.HasTx([]byte("tx3"))
			if err != nil || ok {
				t.Fatalf("expect tx3 to be unknown, %v", err)
			}
		})
	}
}

func TestRawKey(t *testing.T) {
	raw := MakeRawKey("bucket", []byte("a/b"))
	bucket, key, err := parseRawKey(raw)
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "bucket" || string(key) != "a/b" {
		t.Fatalf("unexpected parse %s %s", bucket, key)
	}
	if _, _, err := parseRawKey([]byte("nobucket")); err == nil {
		t.Fatal("expect error")
	}
}
