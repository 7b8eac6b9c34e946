package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFileIsExist(t *testing.T) {
	dir := t.TempDir()
	if !FileIsExist(dir) {
		t.Fatalf("expect %s to exist", dir)
	}
	name := filepath.Join(dir, "conf.yaml")
	if FileIsExist(name) {
		t.Fatalf("expect %s to be absent", name)
	}
	if err := os.WriteFile(name, []byte("a: 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileIsExist(name) {
		t.Fatalf("expect %s to exist", name)
	}
}

// 验证logId生成算法的冲突率
func TestGenLogId(t *testing.T) {
	const concurrent = 100
	const total = 10000

	var mu sync.Mutex
	ids := make(map[string]int, total)
	wg := &sync.WaitGroup{}
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < total/concurrent; j++ {
				id := GenLogId()
				mu.Lock()
				ids[id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	repeat := total - len(ids)
	if repeat > total/100 {
		t.Fatalf("too many repeated log ids. total:%d repeat:%d", total, repeat)
	}
	for id := range ids {
		if !strings.Contains(id, "_") {
			t.Fatalf("bad log id %s", id)
		}
		break
	}
}

func TestGetFuncCall(t *testing.T) {
	fline, function := GetFuncCall(1)
	if !strings.HasPrefix(fline, "utils_test.go:") {
		t.Fatalf("unexpected file line %s", fline)
	}
	if !strings.Contains(function, "TestGetFuncCall") {
		t.Fatalf("unexpected function %s", function)
	}
}

func TestF(t *testing.T) {
	if F([]byte{0xab, 0x01}) != "ab01" {
		t.Fatal("unexpected hex")
	}
}
