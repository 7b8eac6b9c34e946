package manager

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/patrickmn/go-cache"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/kernel/ledger"
	"github.com/xuperchain/xedition/lib/logs"
	"github.com/xuperchain/xedition/lib/metrics"
)

// txChecker is implemented by state stores that remember committed txids.
type txChecker interface {
	HasTx(txid []byte) (bool, error)
}

type managerImpl struct {
	// 交易串行执行
	mutex sync.Mutex

	cfg       *contract.ContractConfig
	model     ledger.XModel
	registry  contract.KernRegistry
	instances *lru.Cache
	txCache   *cache.Cache
	log       logs.Logger
}

func newManagerImpl(cfg *contract.ManagerConfig) (contract.Manager, error) {
	if cfg == nil || cfg.XModel == nil {
		return nil, contract.ErrParameter.More("manager needs a state model")
	}
	conf, err := loadManagerConfig(cfg)
	if err != nil {
		return nil, err
	}
	log, err := logs.NewLogger("", "contract")
	if err != nil {
		return nil, err
	}
	cacheSize := conf.InstanceCacheSize
	if cacheSize <= 0 {
		cacheSize = contract.DefaultContractConfig().InstanceCacheSize
	}
	instances, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	if cfg.EnvConf != nil && cfg.EnvConf.MetricSwitch {
		metrics.RegisterMetrics()
	}

	m := &managerImpl{
		cfg:       conf,
		model:     cfg.XModel,
		registry:  registry,
		instances: instances,
		txCache:   cache.New(conf.TxidCacheExpired, 2*conf.TxidCacheExpired),
		log:       log,
	}
	return m, nil
}

func (m *managerImpl) NewContext(cfg *contract.ContextConfig) (contract.Context, error) {
	if cfg.State == nil {
		return nil, contract.ErrParameter.More("context needs a state sandbox")
	}
	return newContext(cfg, m.registry, nil), nil
}

func (m *managerImpl) NewStateSandbox(cfg *contract.SandboxConfig) (contract.StateSandbox, error) {
	return sandbox.NewXModelCache(cfg.XMReader), nil
}

func (m *managerImpl) GetKernRegistry() contract.KernRegistry {
	return m.registry
}

func (m *managerImpl) StoreCode(name string) (uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	defer observeCall("StoreCode", time.Now())

	if err := contract.ValidContractName(name); err != nil {
		return 0, err
	}
	found := false
	for _, registered := range m.registry.RegisteredContracts() {
		if registered == name {
			found = true
			break
		}
	}
	if !found {
		return 0, contract.ErrCodeNotFound.More("no kernel contract named %s", name)
	}

	state := sandbox.NewXModelCache(m.model)
	codeID, err := nextSeq(state, codeSeqKey)
	if err != nil {
		return 0, err
	}
	if err := saveCodeInfo(state, &contract.CodeInfo{CodeID: codeID, Name: name}); err != nil {
		return 0, err
	}
	txid, err := uuid.NewV4()
	if err != nil {
		return 0, err
	}
	if err := m.model.Commit(txid.Bytes(), state.RWSet().WSet); err != nil {
		return 0, err
	}
	m.log.Info("code stored", "name", name, "codeID", codeID)
	return codeID, nil
}

func (m *managerImpl) CodeInfo(codeID uint64) (*contract.CodeInfo, error) {
	return loadCodeInfo(sandbox.NewXModelCache(m.model), codeID)
}

func (m *managerImpl) ContractInfo(address string) (*contract.ContractInfo, error) {
	return m.lookupInstance(sandbox.NewXModelCache(m.model), address, nil)
}

func (m *managerImpl) ReadState(address, bucket string, key []byte) ([]byte, error) {
	if err := checkBucket(bucket); err != nil {
		return nil, err
	}
	vd, err := m.model.Get(instanceBucket(address, bucket), key)
	if sandbox.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vd.GetPureData().GetValue(), nil
}

func init() {
	contract.Register("default", newManagerImpl)
}

func observeCall(method string, begin time.Time) {
	metrics.CallMethodCounter.WithLabelValues(method).Inc()
	metrics.CallMethodHistogram.WithLabelValues(method).Observe(time.Since(begin).Seconds())
}
