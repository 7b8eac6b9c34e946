package logs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefLogConf(t *testing.T) {
	cfg := GetDefLogConf()
	if cfg.Module != "xedition" || cfg.Level != "debug" {
		t.Fatalf("unexpected default log config %+v", cfg)
	}
}

func TestLoadLogConf(t *testing.T) {
	if _, err := LoadLogConf(""); err == nil {
		t.Fatal("expect error for empty path")
	}

	cfgFile := filepath.Join(t.TempDir(), "log.yaml")
	content := "module: edition\nlevel: info\nfmt: json\nconsole: false\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadLogConf(cfgFile)
	if err != nil {
		t.Fatalf("load log config failed.err:%v", err)
	}
	if cfg.Module != "edition" || cfg.Level != "info" || cfg.Fmt != "json" || cfg.Console {
		t.Fatalf("unexpected log config %+v", cfg)
	}
	// untouched fields keep their defaults
	if cfg.Filename != "xedition" {
		t.Fatalf("expect default filename, got %s", cfg.Filename)
	}
}
