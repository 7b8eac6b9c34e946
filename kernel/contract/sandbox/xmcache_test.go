package sandbox

import (
	"math/big"
	"math/rand"
	"sort"
	"testing"
)

func TestXMCachePutGet(t *testing.T) {
	testCases := []struct {
		Bucket string
		Key    string
		Value  string
		Op     string
	}{
		{"b1", "k1", "v1", "put"},
		{"b1", "k1", "v1", "get"},
		{"b1", "k1", "v2", "put"},
		{"b1", "k1", "v2", "get"},
		{"b1", "k1", "", "del"},
		{"b1", "k1", "", "deleted"},
		{"b1", "k2", "", "missing"},
	}
	store := NewMemXModel()

	mc := NewXModelCache(store)
	for _, test := range testCases {
		switch test.Op {
		case "put":
			err := mc.Put(test.Bucket, []byte(test.Key), []byte(test.Value))
			if err != nil {
				t.Fatal(err)
			}
		case "get":
			v, err := mc.Get(test.Bucket, []byte(test.Key))
			if err != nil {
				t.Fatal(err)
			}
			if string(v) != test.Value {
				t.Errorf("expect %s got %s", test.Value, v)
			}
		case "del":
			if err := mc.Del(test.Bucket, []byte(test.Key)); err != nil {
				t.Fatal(err)
			}
		case "deleted":
			if _, err := mc.Get(test.Bucket, []byte(test.Key)); err != ErrHasDel {
				t.Errorf("expect ErrHasDel got %v", err)
			}
		case "missing":
			if _, err := mc.Get(test.Bucket, []byte(test.Key)); err != ErrNotFound {
				t.Errorf("expect ErrNotFound got %v", err)
			}
		}
	}
}

func TestXMCacheIterator(t *testing.T) {
	const N = 10
	const prefix = "key_"
	keys := make([]string, N)
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < N; i++ {
		key := make([]byte, 10)
		rnd.Read(key)
		keys[i] = prefix + big.NewInt(0).SetBytes(key).Text(35)
	}

	state := NewMemXModel()
	for i := 0; i < N/2; i++ {
		putVersionedData(state, "test", []byte(keys[i]), []byte(keys[i]))
	}
	mc := NewXModelCache(state)
	for i := N / 2; i < N; i++ {
		mc.Put("test", []byte(keys[i]), []byte(keys[i]))
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	iter, err := mc.Select("test", []byte(prefix), []byte(prefix+"\xff"))
	if err != nil {
		t.Fatal(err)
	}
	defer iter.Close()

	i := 0
	for iter.Next() {
		if compareBytes([]byte(keys[i]), iter.Key()) != 0 {
			t.Fatalf("not equal: %s %s", keys[i], iter.Key())
		}
		if string(iter.Value()) != keys[i] {
			t.Fatalf("unexpected value %s for %s", iter.Value(), keys[i])
		}
		i++
	}
	if i != N {
		t.Fatalf("expect iter %d iterms got %d", N, i)
	}

	rwset := mc.RWSet()
	// every key read from the model or probed by Put is in the read set
	if len(rwset.RSet) != N {
		t.Fatalf("expect %d reads, got %d", N, len(rwset.RSet))
	}
	if len(rwset.WSet) != N/2 {
		t.Fatalf("expect %d writes, got %d", N/2, len(rwset.WSet))
	}
}

func TestXMCacheSelectHidesDeleted(t *testing.T) {
	state := NewMemXModel()
	putVersionedData(state, "test", []byte("a"), []byte("1"))
	putVersionedData(state, "test", []byte("b"), []byte("2"))
	putVersionedData(state, "other", []byte("c"), []byte("3"))

	mc := NewXModelCache(state)
	if err := mc.Del("test", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := mc.Put("test", []byte("b"), []byte("20")); err != nil {
		t.Fatal(err)
	}
	// a probe for a missing key must not surface in Select
	if _, err := mc.Get("test", []byte("absent")); err != ErrNotFound {
		t.Fatal(err)
	}

	iter, err := mc.Select("test", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer iter.Close()

	var got []string
	for iter.Next() {
		got = append(got, string(iter.Key())+"="+string(iter.Value()))
	}
	if len(got) != 1 || got[0] != "b=20" {
		t.Fatalf("unexpected select result %v", got)
	}
}

func TestXMCacheReadSetRecordsAbsentKeys(t *testing.T) {
	mc := NewXModelCache(NewMemXModel())
	if _, err := mc.Get("test", []byte("k")); !IsNotFound(err) {
		t.Fatalf("expect not found, got %v", err)
	}
	rwset := mc.RWSet()
	if len(rwset.RSet) != 1 || !IsEmptyVersionedData(rwset.RSet[0]) {
		t.Fatalf("expect one empty read, got %+v", rwset.RSet)
	}
	if len(rwset.WSet) != 0 {
		t.Fatalf("expect no writes, got %d", len(rwset.WSet))
	}

	reader := XMReaderFromRWSet(rwset)
	vd, err := reader.Get("test", []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if !IsEmptyVersionedData(vd) {
		t.Fatal("expect empty versioned data")
	}
}
