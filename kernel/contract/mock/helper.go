package mock

import (
	"github.com/gofrs/uuid"

	"github.com/xuperchain/xedition/kernel/contract"
	_ "github.com/xuperchain/xedition/kernel/contract/manager"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
)

const (
	// ContractAccount is the default initiator of helper transactions.
	ContractAccount = "TeyyPLpp9L7QAcxHangtcHTu7HUZ6iydY"
)

// RegisterFunc installs the kernel methods of one contract.
type RegisterFunc func(contract.KernRegistry) error

// TestHelper runs a real contract manager over an in-memory state.
type TestHelper struct {
	state   *sandbox.MemXModel
	manager contract.Manager
}

func NewTestHelper(cfg *contract.ContractConfig, registers ...RegisterFunc) *TestHelper {
	state := sandbox.NewMemXModel()

	m, err := contract.CreateManager("default", &contract.ManagerConfig{
		XModel: state,
		Config: cfg,
	})
	if err != nil {
		panic(err)
	}
	for _, register := range registers {
		if err := register(m.GetKernRegistry()); err != nil {
			panic(err)
		}
	}

	return &TestHelper{
		manager: m,
		state:   state,
	}
}

func (t *TestHelper) Manager() contract.Manager {
	return t.manager
}

func (t *TestHelper) State() *sandbox.MemXModel {
	return t.state
}

// NewTxid returns a fresh transaction id.
func NewTxid() []byte {
	return uuid.Must(uuid.NewV4()).Bytes()
}

// StoreCode stores every named code and returns their ids in order.
func (t *TestHelper) StoreCode(names ...string) ([]uint64, error) {
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		id, err := t.manager.StoreCode(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *TestHelper) Instantiate(initiator string, codeID uint64, label string, args map[string][]byte) (*contract.TxResult, error) {
	return t.manager.Submit(&contract.Tx{
		Txid:        NewTxid(),
		Initiator:   initiator,
		AuthRequire: []string{initiator},
		Msg: contract.Msg{
			Instantiate: &contract.InstantiateMsg{
				CodeID: codeID,
				Label:  label,
				Args:   args,
			},
		},
	})
}

func (t *TestHelper) Execute(initiator, address, method string, args map[string][]byte) (*contract.TxResult, error) {
	return t.manager.Submit(&contract.Tx{
		Txid:        NewTxid(),
		Initiator:   initiator,
		AuthRequire: []string{initiator},
		Msg: contract.Msg{
			Execute: &contract.ExecuteMsg{
				Contract: address,
				Method:   method,
				Args:     args,
			},
		},
	})
}

// Query calls the Query method of an instance.
func (t *TestHelper) Query(address string, args map[string][]byte) (*contract.Response, error) {
	return t.manager.Query(&contract.QueryRequest{
		Contract: address,
		Method:   "Query",
		Args:     args,
	})
}
