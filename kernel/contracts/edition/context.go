package edition

import (
	"fmt"

	"github.com/xuperchain/xedition/kernel/common/xcontext"
	"github.com/xuperchain/xedition/lib/logs"
	"github.com/xuperchain/xedition/lib/timer"
)

type Context struct {
	// 基础上下文
	xcontext.BaseCtx
}

func NewEditionCtx() (*Context, error) {
	log, err := logs.NewLogger("", EditionContract)
	if err != nil {
		return nil, fmt.Errorf("new edition ctx failed because new logger error. err:%v", err)
	}

	ctx := new(Context)
	ctx.XLog = log
	ctx.Timer = timer.NewXTimer()
	return ctx, nil
}
