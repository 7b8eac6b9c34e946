package logs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestInfo(t *testing.T) {
	lc := GetDefLogConf()
	lc.Filepath = t.TempDir()
	lc.Console = false
	lc.RotateInterval = 0
	driver, err := OpenLog(lc)
	if err != nil {
		t.Fatalf("open log fail.err:%v", err)
	}
	log, err := NewLogFitter(driver, "")
	if err != nil {
		t.Fatalf("new logger fail.err:%v", err)
	}

	wg := &sync.WaitGroup{}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			log.Info("info1", "a", 1, "b", 2, "c", 3, "num", num)
			log.Debug("test", "a", 1, "b", 2, "c", 3, "num", num)
			log.Trace("test", "a", 1, "b", 2, "c", 3, "num", num)
			log.Info("info3", "a", true, "b", 1, "num", num)
		}(i)
	}

	log.SetCommField("key3", 3)
	log.Info("info5", "a", 1, "b", 2, "c", 3)
	log.Warn("test warn", 1)
	wg.Wait()
	log.Debug("msg", "log_id", "123456---111111")

	buf, err := os.ReadFile(filepath.Join(lc.Filepath, lc.Filename+".log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(buf), "info5") || !strings.Contains(string(buf), "key3=3") {
		t.Fatalf("expect info5 with key3 in log, got %s", buf)
	}
	if !strings.Contains(string(buf), "log_id=123456---111111") {
		t.Fatal("expect log_id to be overridden")
	}

	wf, err := os.ReadFile(filepath.Join(lc.Filepath, lc.Filename+".log.wf"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(wf), "test warn") || !strings.Contains(string(wf), "unknow=1") {
		t.Fatalf("expect warn with the odd value kept, got %s", wf)
	}
	if !strings.Contains(string(buf), "call=log_fitter_test.go:") {
		t.Fatalf("expect call site of the test, got %s", buf)
	}
}

func TestNewLogger(t *testing.T) {
	lg, err := NewLogger("", "edition")
	if err != nil {
		t.Fatal(err)
	}
	if lg.GetLogId() == "" {
		t.Fatal("expect a generated log id")
	}
	lg.Info("no driver configured")

	if _, err := NewLogFitter(nil, ""); err == nil {
		t.Fatal("expect error for nil driver")
	}
}
