package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// FileExists reports whether the named file or directory exists.
func FileIsExist(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}

	return true
}

// Generate unique id, Not strictly unique
// But the probability of repetition is very low
func GenPseudoUniqId() uint64 {
	nano := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(nano))

	randNum1 := rnd.Int63()
	randNum2 := rnd.Int63()
	shift1 := rnd.Intn(16) + 2
	shift2 := rnd.Intn(8) + 1

	uId := ((randNum1 >> uint(shift1)) + (randNum2 >> uint(shift2)) + (nano >> 1)) &
		0x1FFFFFFFFFFFFF
	return uint64(uId)
}

// Generate log id, Not strictly unique
func GenLogId() string {
	return fmt.Sprintf("%d_%d", time.Now().Unix(), GenPseudoUniqId())
}

// Get call method by runtime.Caller
func GetFuncCall(callDepth int) (string, string) {
	pc, file, line, ok := runtime.Caller(callDepth)
	if !ok {
		return "???:0", "???"
	}

	f := runtime.FuncForPC(pc)
	_, function := path.Split(f.Name())
	_, filename := path.Split(file)

	fline := filename + ":" + strconv.Itoa(line)
	return fline, function
}

// 获取当前执行目录
func GetCurExecDir() string {
	curDir, _ := filepath.Abs(filepath.Dir(os.Args[0]))
	return curDir
}

// Print byte slice data as hex string
func F(b []byte) string {
	return fmt.Sprintf("%x", b)
}
