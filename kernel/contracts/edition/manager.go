package edition

import (
	"github.com/xuperchain/xedition/kernel/contract"
)

// Register adds the edition methods to a kernel registry.
func Register(register contract.KernRegistry) error {
	ctx, err := NewEditionCtx()
	if err != nil {
		return err
	}
	x := NewContract(ctx)

	kMethods := map[string]contract.KernMethod{
		Instantiate: x.Instantiate,
		Reply:       x.Reply,
		Receive:     x.Receive,
		Query:       x.Query,
	}
	for method, f := range kMethods {
		if _, err := register.GetKernMethod(EditionContract, method); err != nil {
			register.RegisterKernMethod(EditionContract, method, f)
		}
	}
	return nil
}
