package cw721

import (
	"fmt"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/lib/logs"
)

// Register adds the collection methods to a kernel registry.
func Register(register contract.KernRegistry) error {
	log, err := logs.NewLogger("", Cw721Contract)
	if err != nil {
		return fmt.Errorf("new cw721 logger failed. err:%v", err)
	}
	x := NewContract(log)

	kMethods := map[string]contract.KernMethod{
		Instantiate: x.Instantiate,
		Mint:        x.Mint,
		Query:       x.Query,
	}
	for method, f := range kMethods {
		if _, err := register.GetKernMethod(Cw721Contract, method); err != nil {
			register.RegisterKernMethod(Cw721Contract, method, f)
		}
	}
	return nil
}
