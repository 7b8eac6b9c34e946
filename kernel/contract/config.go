package contract

import (
	"time"
)

// ContractConfig define the config of the contract host
type ContractConfig struct {
	EnableDebugLog bool `yaml:"enableDebugLog"`
	// EnableSignature makes every AuthRequire account sign the tx.
	EnableSignature bool `yaml:"enableSignature"`

	// MaxMessages bounds messages plus replies dispatched by one transaction.
	MaxMessages int `yaml:"maxMessages"`
	// InstanceCacheSize is the number of instance records kept in memory.
	InstanceCacheSize int `yaml:"instanceCacheSize"`
	// TxidCacheExpired is how long a handled txid is remembered.
	TxidCacheExpired time.Duration `yaml:"txidCacheExpired"`
	// ResourceLimits applies to transactions that set none.
	ResourceLimits Limits   `yaml:"resourceLimits"`
	GasPrice       GasPrice `yaml:"gasPrice"`
}

func DefaultContractConfig() *ContractConfig {
	return &ContractConfig{
		EnableDebugLog:    true,
		MaxMessages:       128,
		InstanceCacheSize: 1024,
		TxidCacheExpired:  10 * time.Minute,
		ResourceLimits:    MaxLimits,
		GasPrice: GasPrice{
			CpuRate:  1000,
			MemRate:  1000000,
			DiskRate: 1,
			XfeeRate: 1,
		},
	}
}
