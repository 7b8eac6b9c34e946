package contract

import (
	"fmt"
	"sync"

	"github.com/xuperchain/xedition/kernel/common/xconfig"
	"github.com/xuperchain/xedition/kernel/ledger"
)

var (
	managerMutex sync.Mutex
	managers     = make(map[string]NewManagerFunc)
)

type NewManagerFunc func(cfg *ManagerConfig) (Manager, error)

type Manager interface {
	NewContext(cfg *ContextConfig) (Context, error)
	NewStateSandbox(cfg *SandboxConfig) (StateSandbox, error)
	GetKernRegistry() KernRegistry

	// StoreCode makes a registered kernel contract instantiable and returns its code id.
	StoreCode(name string) (uint64, error)
	// Submit executes a transaction and every message it spawns atomically.
	Submit(tx *Tx) (*TxResult, error)
	// Query runs a read only invocation. Nothing it writes is kept.
	Query(req *QueryRequest) (*Response, error)

	ContractInfo(address string) (*ContractInfo, error)
	CodeInfo(codeID uint64) (*CodeInfo, error)
	// ReadState reads raw instance state, bypassing the contract.
	ReadState(address, bucket string, key []byte) ([]byte, error)
}

type ManagerConfig struct {
	EnvConf  *xconfig.EnvConf
	XModel   ledger.XModel
	Registry KernRegistry

	Config *ContractConfig // used by testing
}

func Register(name string, f NewManagerFunc) {
	managerMutex.Lock()
	defer managerMutex.Unlock()

	if _, exists := managers[name]; exists {
		panic(fmt.Sprintf("contract manager of type %s exists", name))
	}
	managers[name] = f
}

func CreateManager(name string, cfg *ManagerConfig) (Manager, error) {
	mgfunc, ok := managers[name]
	if !ok {
		return nil, fmt.Errorf("contract manager of type %s not exists", name)
	}
	return mgfunc(cfg)
}
