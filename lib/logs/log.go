package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/xuperchain/log15"

	"github.com/xuperchain/xedition/lib/utils"
)

// LogBufSize define log buffer channel size
const LogBufSize = 102400

var (
	logHandle LogDriver
	logMutex  sync.RWMutex
)

// InitLog opens the process wide log driver from a config file.
// A missing config file falls back to the default config.
func InitLog(cfgFile, logDir string) error {
	lc := GetDefLogConf()
	if cfgFile != "" && utils.FileIsExist(cfgFile) {
		cfg, err := LoadLogConf(cfgFile)
		if err != nil {
			return err
		}
		lc = cfg
	}
	if logDir != "" {
		lc.Filepath = logDir
	}

	driver, err := OpenLog(lc)
	if err != nil {
		return err
	}

	logMutex.Lock()
	defer logMutex.Unlock()
	logHandle = driver
	return nil
}

// OpenLog create and open log stream using LogConfig
func OpenLog(lc *LogConfig) (LogDriver, error) {
	infoFile := filepath.Join(lc.Filepath, lc.Filename+".log")
	wfFile := filepath.Join(lc.Filepath, lc.Filename+".log.wf")
	if err := os.MkdirAll(lc.Filepath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log dir failed.err:%v", err)
	}

	lfmt := log.LogfmtFormat()
	switch lc.Fmt {
	case "json":
		lfmt = log.JsonFormat()
	}

	xlog := log.New("module", lc.Module)
	lvLevel, err := log.LvlFromString(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log level error.err:%v", err)
	}
	// set lowest level as level limit, this may improve performance
	xlog.SetLevelLimit(lvLevel)

	// RotateFileHandler only valid if `RotateInterval` and `RotateBackups` greater than 0
	var (
		nmHandler log.Handler
		wfHandler log.Handler
	)
	if lc.RotateInterval > 0 && lc.RotateBackups > 0 {
		nmHandler = log.Must.RotateFileHandler(
			infoFile, lfmt, lc.RotateInterval, lc.RotateBackups)
		wfHandler = log.Must.RotateFileHandler(
			wfFile, lfmt, lc.RotateInterval, lc.RotateBackups)
	} else {
		nmHandler = log.Must.FileHandler(infoFile, lfmt)
		wfHandler = log.Must.FileHandler(wfFile, lfmt)
	}

	if lc.Async {
		nmHandler = log.BufferedHandler(LogBufSize, nmHandler)
		wfHandler = log.BufferedHandler(LogBufSize, wfHandler)
	}

	// prints log level between `lvLevel` to Info to common log
	nmfileh := log.BoundLvlFilterHandler(lvLevel, log.LvlError, nmHandler)

	// prints log level greater or equal to Warn to wf log
	wffileh := log.LvlFilterHandler(log.LvlWarn, wfHandler)

	var lhd log.Handler
	if lc.Console {
		hstd := log.StreamHandler(os.Stderr, lfmt)
		lhd = log.SyncHandler(log.MultiHandler(hstd, nmfileh, wffileh))
	} else {
		lhd = log.SyncHandler(log.MultiHandler(nmfileh, wffileh))
	}
	xlog.SetHandler(lhd)

	return xlog, nil
}

// consoleDriver is used until InitLog succeeds, e.g. in unit tests.
func consoleDriver() LogDriver {
	xlog := log.New("module", "xedition")
	xlog.SetLevelLimit(log.LvlWarn)
	xlog.SetHandler(log.LvlFilterHandler(log.LvlWarn, log.StreamHandler(os.Stderr, log.LogfmtFormat())))
	return xlog
}

func getDriver() LogDriver {
	logMutex.RLock()
	driver := logHandle
	logMutex.RUnlock()
	if driver != nil {
		return driver
	}

	logMutex.Lock()
	defer logMutex.Unlock()
	if logHandle == nil {
		logHandle = consoleDriver()
	}
	return logHandle
}

// NewLogger returns a logger tagged with a sub module name.
// An empty logId generates one.
func NewLogger(logId string, subMod string) (Logger, error) {
	lf, err := NewLogFitter(getDriver(), logId)
	if err != nil {
		return nil, err
	}
	if subMod != "" {
		lf.SetCommField("submodule", subMod)
	}
	return lf, nil
}
