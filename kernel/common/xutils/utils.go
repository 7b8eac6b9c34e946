package xutils

import (
	"os"
	"path/filepath"

	"github.com/xuperchain/xedition/lib/utils"
)

const (
	// XEnvVarRootPath overrides the root directory of the program
	XEnvVarRootPath = "XEDITION_ROOT_PATH"
)

// Set environment variable:XEDITION_ROOT_PATH
func GetXRootPath() string {
	rtPath := os.Getenv(XEnvVarRootPath)
	if rtPath != "" && utils.FileIsExist(rtPath) {
		return rtPath
	}

	return ""
}

// 获取当前执行文件的上级目录
func GetCurRootDir() string {
	return filepath.Dir(utils.GetCurExecDir())
}
