package manager

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/lib/utils"
)

const (
	contractConfigName = "contract.yaml"
)

// LoadConfig reads a contract host config file on top of the defaults.
func LoadConfig(fname string) (*contract.ContractConfig, error) {
	viperObj := viper.New()
	viperObj.SetConfigFile(fname)
	err := viperObj.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read config failed.path:%s,err:%v", fname, err)
	}

	cfg := contract.DefaultContractConfig()
	err = viperObj.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return nil, fmt.Errorf("unmatshal config failed.path:%s,err:%v", fname, err)
	}
	return cfg, nil
}

func loadManagerConfig(cfg *contract.ManagerConfig) (*contract.ContractConfig, error) {
	if cfg.Config != nil {
		return cfg.Config, nil
	}
	if cfg.EnvConf == nil {
		return contract.DefaultContractConfig(), nil
	}

	confName := cfg.EnvConf.ContractConf
	if confName == "" {
		confName = contractConfigName
	}
	fname := cfg.EnvConf.GenConfFilePath(confName)
	if !utils.FileIsExist(fname) {
		return contract.DefaultContractConfig(), nil
	}
	return LoadConfig(fname)
}
