package manager

import (
	"github.com/xuperchain/xedition/kernel/contract"
)

const (
	instantiateMethod = "Instantiate"
	queryMethod       = "Query"
)

// contextImpl runs single invocations of one instance.
type contextImpl struct {
	cfg      contract.ContextConfig
	registry contract.KernRegistry
	meter    *meter
}

func newContext(cfg *contract.ContextConfig, registry contract.KernRegistry, m *meter) *contextImpl {
	if m == nil {
		m = newMeter(cfg.ResourceLimits)
	}
	return &contextImpl{
		cfg:      *cfg,
		registry: registry,
		meter:    m,
	}
}

func (c *contextImpl) Invoke(method string, args map[string][]byte) (*contract.Response, error) {
	if !c.cfg.CanInitialize && method == instantiateMethod {
		return nil, contract.ErrForbidden.More("invalid contract method %s", method)
	}

	handler, err := c.registry.GetKernMethod(c.cfg.ContractName, method)
	if err != nil {
		return nil, err
	}
	if err := c.meter.charge(contract.Limits{XFee: 1}); err != nil {
		return nil, err
	}

	kctx := newKContext(&c.cfg, args, c.meter)
	resp, err := handler(kctx)
	if err != nil {
		return nil, contract.CastError(err)
	}
	if c.meter.exceeded() {
		return nil, contract.ErrOutOfGas.More("used %s, limit %s", c.meter.used, c.meter.limit)
	}
	if resp == nil {
		return nil, contract.ErrInternal.More("contract %s returns no response", c.cfg.ContractName)
	}
	if resp.Status == 0 {
		resp.Status = contract.StatusOK
	}
	if resp.HasError() {
		return nil, contract.ErrUnknown.More("status:%d message:%s", resp.Status, resp.Message)
	}
	for _, sub := range resp.Messages {
		if err := sub.Msg.Validate(); err != nil {
			return nil, err
		}
		if sub.ReplyOn != contract.ReplyNever && sub.ReplyOn != contract.ReplySuccess {
			return nil, contract.ErrParameter.More("unsupported reply mode %s", sub.ReplyOn)
		}
	}
	return resp, nil
}

func (c *contextImpl) ResourceUsed() contract.Limits {
	return c.meter.used
}

func (c *contextImpl) Release() error {
	return nil
}
