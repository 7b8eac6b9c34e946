package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type BaseCmd struct {
	// cobra command
	cmd *cobra.Command
}

func (t *BaseCmd) SetCmd(cmd *cobra.Command) {
	t.cmd = cmd
}

func (t *BaseCmd) GetCmd() *cobra.Command {
	return t.cmd
}

// 全局参数
var (
	GFlagConf      string
	GFlagInitiator string
	GFlagKeys      string
	GFlagMetrics   bool
)

func BindGlobalFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&GFlagConf, "conf", "c", "./conf/env.yaml",
		"environment config file path")
	rootCmd.PersistentFlags().StringVarP(&GFlagInitiator, "initiator", "i", "",
		"account that initiates the transaction")
	rootCmd.PersistentFlags().StringVarP(&GFlagKeys, "keys", "k", "",
		"account key dir used to sign the transaction")
	rootCmd.PersistentFlags().BoolVar(&GFlagMetrics, "metrics", false,
		"print metrics of this run when the command exits")
}

// parseArgs turns a json object of strings into contract args.
func parseArgs(raw string) (map[string][]byte, error) {
	args := make(map[string][]byte)
	if raw == "" {
		return args, nil
	}
	strArgs := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &strArgs); err != nil {
		return nil, fmt.Errorf("args must be a json object of strings.err:%v", err)
	}
	for k, v := range strArgs {
		args[k] = []byte(v)
	}
	return args, nil
}

func printJSON(v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}
