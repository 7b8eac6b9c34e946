package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contracts/cw20"
	"github.com/xuperchain/xedition/kernel/contracts/edition"
)

// EditionConf is the setup of one edition, read from a yaml file.
type EditionConf struct {
	CodeID      uint64                 `mapstructure:"code_id"`
	Label       string                 `mapstructure:"label"`
	MaxTokens   uint32                 `mapstructure:"max_tokens"`
	UnitPrice   string                 `mapstructure:"unit_price"`
	Name        string                 `mapstructure:"name"`
	Symbol      string                 `mapstructure:"symbol"`
	TokenCodeID uint64                 `mapstructure:"token_code_id"`
	Cw20Address string                 `mapstructure:"cw20_address"`
	TokenURI    string                 `mapstructure:"token_uri"`
	Extension   map[string]interface{} `mapstructure:"extension"`
}

func LoadEditionConf(fname string) (*EditionConf, error) {
	viperObj := viper.New()
	viperObj.SetConfigFile(fname)
	if err := viperObj.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed.path:%s,err:%v", fname, err)
	}

	cfg := &EditionConf{Label: "edition"}
	if err := viperObj.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmatshal config failed.path:%s,err:%v", fname, err)
	}
	return cfg, nil
}

// Args converts the setup into edition Instantiate args.
func (c *EditionConf) Args(owner string) (map[string][]byte, error) {
	args := map[string][]byte{
		"owner":         []byte(owner),
		"max_tokens":    []byte(strconv.FormatUint(uint64(c.MaxTokens), 10)),
		"unit_price":    []byte(c.UnitPrice),
		"name":          []byte(c.Name),
		"symbol":        []byte(c.Symbol),
		"token_code_id": []byte(strconv.FormatUint(c.TokenCodeID, 10)),
		"cw20_address":  []byte(c.Cw20Address),
		"token_uri":     []byte(c.TokenURI),
	}
	if len(c.Extension) > 0 {
		ext, err := json.Marshal(c.Extension)
		if err != nil {
			return nil, err
		}
		args["extension"] = ext
	}
	return args, nil
}

type EditionCmd struct {
	BaseCmd
}

func GetEditionCmd() *EditionCmd {
	editionCmdIns := new(EditionCmd)

	editionCmdIns.cmd = &cobra.Command{
		Use:           "edition",
		Short:         "Limited edition operation.",
		Example:       "xedition edition buy -i alice --edition [address] --amount 100",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	editionCmdIns.cmd.AddCommand(getDeployEditionCmd())
	editionCmdIns.cmd.AddCommand(getBuyEditionCmd())
	return editionCmdIns
}

func getDeployEditionCmd() *cobra.Command {
	var fname string

	cmd := &cobra.Command{
		Use:           "deploy",
		Short:         "Instantiate an edition and its collection.",
		Example:       "xedition edition deploy -i alice --file ./conf/edition.yaml",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadEditionConf(fname)
			if err != nil {
				return err
			}
			args, err := cfg.Args(GFlagInitiator)
			if err != nil {
				return err
			}
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			result, err := n.submit(contract.Msg{
				Instantiate: &contract.InstantiateMsg{CodeID: cfg.CodeID, Label: cfg.Label, Args: args},
			})
			if err != nil {
				return err
			}
			value, err := n.manager.ReadState(result.ContractAddress, edition.Bucket, []byte(edition.KeyConfig))
			if err != nil {
				return err
			}
			fmt.Println(result.ContractAddress)
			fmt.Println(string(value))
			return nil
		},
	}
	cmd.Flags().StringVarP(&fname, "file", "f", "./conf/edition.yaml", "edition setup file")
	return cmd
}

func getBuyEditionCmd() *cobra.Command {
	var address, amount string

	cmd := &cobra.Command{
		Use:           "buy",
		Short:         "Pay the edition price through its cw20 token.",
		Example:       "xedition edition buy -i alice --edition [address] --amount 100",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			value, err := n.manager.ReadState(address, edition.Bucket, []byte(edition.KeyConfig))
			if err != nil {
				return err
			}
			if len(value) == 0 {
				return fmt.Errorf("%s is not an edition", address)
			}
			config := new(edition.Config)
			if err := json.Unmarshal(value, config); err != nil {
				return err
			}
			if amount == "" {
				amount = config.UnitPrice
			}

			result, err := n.submit(contract.Msg{
				Execute: &contract.ExecuteMsg{
					Contract: config.Cw20Address,
					Method:   cw20.Send,
					Args: map[string][]byte{
						"contract": []byte(address),
						"amount":   []byte(amount),
					},
				},
			})
			if err != nil {
				return err
			}
			return printJSON(result.Events)
		},
	}
	cmd.Flags().StringVar(&address, "edition", "", "edition address")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount, defaults to the unit price")
	return cmd
}
