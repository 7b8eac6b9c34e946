package manager

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xuperchain/xedition/kernel/contract"
)

type registryImpl struct {
	mutex   sync.Mutex
	methods map[string]map[string]contract.KernMethod
}

// NewRegistry returns an empty kernel method registry.
func NewRegistry() contract.KernRegistry {
	return &registryImpl{}
}

func (r *registryImpl) RegisterKernMethod(ctract, method string, handler contract.KernMethod) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.methods == nil {
		r.methods = make(map[string]map[string]contract.KernMethod)
	}
	contractMap, ok := r.methods[ctract]
	if !ok {
		contractMap = make(map[string]contract.KernMethod)
		r.methods[ctract] = contractMap
	}
	_, ok = contractMap[method]
	if ok {
		panic(fmt.Sprintf("kernel method `%s' for `%s' exists", method, ctract))
	}
	contractMap[method] = handler
}

func (r *registryImpl) GetKernMethod(ctract, method string) (contract.KernMethod, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	contractMap, ok := r.methods[ctract]
	if !ok {
		return nil, contract.ErrCodeNotFound.More("kernel contract '%s' not found", ctract)
	}
	contractMethod, ok := contractMap[method]
	if !ok {
		return nil, contract.ErrMethodNotFound.More("kernel method '%s' for '%s' not exists", method, ctract)
	}
	return contractMethod, nil
}

func (r *registryImpl) RegisteredContracts() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
