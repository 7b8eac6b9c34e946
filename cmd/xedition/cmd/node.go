package cmd

import (
	"fmt"
	"os"

	"github.com/gofrs/uuid"

	"github.com/xuperchain/xedition/bcs/ledger/xledger/state/xmodel"
	"github.com/xuperchain/xedition/kernel/common/xconfig"
	"github.com/xuperchain/xedition/kernel/contract"
	_ "github.com/xuperchain/xedition/kernel/contract/manager"
	"github.com/xuperchain/xedition/kernel/contracts/cw20"
	"github.com/xuperchain/xedition/kernel/contracts/cw721"
	"github.com/xuperchain/xedition/kernel/contracts/edition"
	"github.com/xuperchain/xedition/lib/logs"
	"github.com/xuperchain/xedition/lib/metrics"
	"github.com/xuperchain/xedition/lib/storage/kvdb"
	// import要使用的存储引擎驱动
	_ "github.com/xuperchain/xedition/lib/storage/kvdb/badgerdb"
	_ "github.com/xuperchain/xedition/lib/storage/kvdb/leveldb"
)

const (
	defaultMemCacheSize          = 128
	defaultFileHandlersCacheSize = 512
)

// node is a contract manager over the local state db.
type node struct {
	envConf *xconfig.EnvConf
	db      kvdb.Database
	model   *xmodel.XModel
	manager contract.Manager
	log     logs.Logger
}

func openNode(envCfgPath string) (*node, error) {
	envConf, err := xconfig.LoadEnvConf(envCfgPath)
	if err != nil {
		return nil, err
	}

	// 初始化日志
	err = logs.InitLog(envConf.GenConfFilePath(envConf.LogConf), envConf.GenDirAbsPath(envConf.LogDir))
	if err != nil {
		return nil, err
	}
	log, err := logs.NewLogger("", "xedition")
	if err != nil {
		return nil, err
	}

	db, err := kvdb.CreateKVInstance(&kvdb.KVParameter{
		DBPath:                envConf.GenDataAbsPath(envConf.StateDir),
		KVEngineType:          envConf.KVEngineType,
		MemCacheSize:          defaultMemCacheSize,
		FileHandlersCacheSize: defaultFileHandlersCacheSize,
	})
	if err != nil {
		return nil, err
	}
	model, err := xmodel.NewXModel(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	if GFlagMetrics {
		metrics.RegisterMetrics()
	}
	mgr, err := contract.CreateManager("default", &contract.ManagerConfig{
		EnvConf: envConf,
		XModel:  model,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, register := range []func(contract.KernRegistry) error{cw20.Register, cw721.Register, edition.Register} {
		if err := register(mgr.GetKernRegistry()); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &node{
		envConf: envConf,
		db:      db,
		model:   model,
		manager: mgr,
		log:     log,
	}, nil
}

func (n *node) Close() {
	n.model.Close()
	if GFlagMetrics {
		if err := dumpMetrics(os.Stdout); err != nil {
			n.log.Warn("dump metrics failed", "err", err)
		}
	}
}

// submit signs the tx with --keys when given.
func (n *node) submit(msg contract.Msg) (*contract.TxResult, error) {
	var acc *account
	initiator := GFlagInitiator
	if GFlagKeys != "" {
		var err error
		acc, err = loadAccount(GFlagKeys)
		if err != nil {
			return nil, err
		}
		if initiator == "" {
			initiator = acc.Address
		}
		if initiator != acc.Address {
			return nil, fmt.Errorf("initiator %s does not own keys in %s", initiator, GFlagKeys)
		}
	}
	if initiator == "" {
		return nil, fmt.Errorf("initiator is required")
	}
	txid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	tx := &contract.Tx{
		Txid:        txid.Bytes(),
		Initiator:   initiator,
		AuthRequire: []string{initiator},
		Msg:         msg,
	}
	if acc != nil {
		if err := acc.sign(tx); err != nil {
			return nil, err
		}
	}
	result, err := n.manager.Submit(tx)
	if err != nil {
		return nil, err
	}
	n.log.Info("tx submitted", "txid", txid.String(), "gas", result.GasUsed)
	return result, nil
}
