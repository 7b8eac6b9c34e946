package manager

import (
	"time"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/lib/metrics"
)

func (m *managerImpl) Query(req *contract.QueryRequest) (*contract.Response, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	defer observeCall("Query", time.Now())

	if req == nil || req.Contract == "" || req.Method == "" {
		return nil, contract.ErrParameter.More("query without contract or method")
	}
	if req.Method == contract.ReplyMethod || req.Method == instantiateMethod {
		return nil, contract.ErrForbidden.More("method %s can not be queried", req.Method)
	}

	// 查询在独立的沙盒里执行, 写集直接丢弃
	state := sandbox.NewXModelCache(m.model)
	info, err := m.lookupInstance(state, req.Contract, nil)
	if err != nil {
		return nil, err
	}
	ctx := newContext(&contract.ContextConfig{
		State:          state,
		ContractName:   info.Name,
		Address:        info.Address,
		ResourceLimits: m.cfg.ResourceLimits,
	}, m.registry, nil)
	resp, err := ctx.Invoke(req.Method, req.Args)
	code := "OK"
	if err != nil {
		code = "failed"
	}
	metrics.ContractInvokeCounter.WithLabelValues(info.Name, req.Method, code).Inc()
	if err != nil {
		return nil, err
	}
	if len(resp.Messages) > 0 {
		return nil, contract.ErrForbidden.More("query of %s emitted messages", req.Contract)
	}
	return resp, nil
}
