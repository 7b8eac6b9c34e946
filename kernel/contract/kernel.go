package contract

type KernRegistry interface {
	RegisterKernMethod(contract, method string, handler KernMethod)
	GetKernMethod(contract, method string) (KernMethod, error)
	// RegisteredContracts lists code names that have at least one method.
	RegisteredContracts() []string
}

type KernMethod func(ctx KContext) (*Response, error)

type KContext interface {
	// 交易相关数据
	Args() map[string][]byte
	Initiator() string
	Caller() string
	AuthRequire() []string

	// Address is the address of the instance being executed.
	Address() string

	// 状态修改接口, buckets are private to the running instance
	XMState

	AddResourceUsed(delta Limits)
	ResourceLimit() Limits
}
