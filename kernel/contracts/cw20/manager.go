package cw20

import (
	"fmt"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/lib/logs"
)

// Register adds the token methods to a kernel registry.
func Register(register contract.KernRegistry) error {
	log, err := logs.NewLogger("", Cw20Contract)
	if err != nil {
		return fmt.Errorf("new cw20 logger failed. err:%v", err)
	}
	x := NewContract(log)

	kMethods := map[string]contract.KernMethod{
		Instantiate: x.Instantiate,
		Transfer:    x.Transfer,
		Send:        x.Send,
		Query:       x.Query,
	}
	for method, f := range kMethods {
		if _, err := register.GetKernMethod(Cw20Contract, method); err != nil {
			register.RegisterKernMethod(Cw20Contract, method, f)
		}
	}
	return nil
}
