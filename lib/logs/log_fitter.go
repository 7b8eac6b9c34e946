package logs

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuperchain/xedition/lib/utils"
)

// Reserve common key
const (
	CommFieldLogId = "log_id"
	CommFieldPid   = "pid"
	CommFieldCall  = "call"
)

// runtime.Caller depth of the code calling a Logger method
const callerDepth = 3

// 底层日志库约束接口
type LogDriver interface {
	Error(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
}

// Logger prefixes every record with log_id, call site, pid and the common fields.
type Logger interface {
	GetLogId() string
	SetCommField(key string, value interface{})
	Error(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
}

type LogFitter struct {
	driver LogDriver
	logId  string
	pid    int

	mu     sync.RWMutex
	fields []interface{}
}

func NewLogFitter(driver LogDriver, logId string) (*LogFitter, error) {
	if driver == nil {
		return nil, fmt.Errorf("new logger param error")
	}
	if logId == "" {
		logId = utils.GenLogId()
	}
	return &LogFitter{driver: driver, logId: logId, pid: os.Getpid()}, nil
}

func (t *LogFitter) GetLogId() string {
	return t.logId
}

func (t *LogFitter) SetCommField(key string, value interface{}) {
	if key == "" || value == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields = append(t.fields, key, value)
}

func (t *LogFitter) Error(msg string, ctx ...interface{}) {
	t.driver.Error(msg, t.withFields(ctx)...)
}

func (t *LogFitter) Warn(msg string, ctx ...interface{}) {
	t.driver.Warn(msg, t.withFields(ctx)...)
}

func (t *LogFitter) Info(msg string, ctx ...interface{}) {
	t.driver.Info(msg, t.withFields(ctx)...)
}

func (t *LogFitter) Trace(msg string, ctx ...interface{}) {
	t.driver.Trace(msg, t.withFields(ctx)...)
}

func (t *LogFitter) Debug(msg string, ctx ...interface{}) {
	t.driver.Debug(msg, t.withFields(ctx)...)
}

// withFields must be called directly by the level methods, see callerDepth.
func (t *LogFitter) withFields(ctx []interface{}) []interface{} {
	fileLine, _ := utils.GetFuncCall(callerDepth)

	if len(ctx)%2 != 0 {
		ctx = append(ctx[:len(ctx)-1:len(ctx)-1], "unknow", ctx[len(ctx)-1])
	}
	logId := interface{}(t.logId)
	// 调用方传入的log_id覆盖默认值
	if len(ctx) > 1 && fmt.Sprintf("%v", ctx[0]) == CommFieldLogId {
		logId = ctx[1]
		ctx = ctx[2:]
	}

	t.mu.RLock()
	out := make([]interface{}, 0, 6+len(t.fields)+len(ctx))
	out = append(out, CommFieldLogId, logId, CommFieldCall, fileLine, CommFieldPid, t.pid)
	out = append(out, t.fields...)
	t.mu.RUnlock()
	return append(out, ctx...)
}
