package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xedition/kernel/contract"
)

type ContractCmd struct {
	BaseCmd
}

func GetContractCmd() *ContractCmd {
	contractCmdIns := new(ContractCmd)

	contractCmdIns.cmd = &cobra.Command{
		Use:           "contract",
		Short:         "Contract operation.",
		Example:       "xedition contract invoke --contract [address] --method [method] --args '{}'",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	contractCmdIns.cmd.AddCommand(getInstantiateCmd())
	contractCmdIns.cmd.AddCommand(getInvokeCmd())
	contractCmdIns.cmd.AddCommand(getQueryCmd())
	contractCmdIns.cmd.AddCommand(getStateCmd())
	return contractCmdIns
}

func getInstantiateCmd() *cobra.Command {
	var codeID uint64
	var label, rawArgs string

	cmd := &cobra.Command{
		Use:           "instantiate",
		Short:         "Create an instance from a stored code.",
		Example:       "xedition contract instantiate -i alice --code 1 --args '{\"name\":\"PAY\"}'",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := parseArgs(rawArgs)
			if err != nil {
				return err
			}
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			result, err := n.submit(contract.Msg{
				Instantiate: &contract.InstantiateMsg{CodeID: codeID, Label: label, Args: args},
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().Uint64Var(&codeID, "code", 0, "code id")
	cmd.Flags().StringVar(&label, "label", "", "instance label")
	cmd.Flags().StringVar(&rawArgs, "args", "", "json object of string args")
	return cmd
}

func getInvokeCmd() *cobra.Command {
	var address, method, rawArgs string

	cmd := &cobra.Command{
		Use:           "invoke",
		Short:         "Execute a contract method in a transaction.",
		Example:       "xedition contract invoke -i alice --contract [address] --method Transfer --args '{}'",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := parseArgs(rawArgs)
			if err != nil {
				return err
			}
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			result, err := n.submit(contract.Msg{
				Execute: &contract.ExecuteMsg{Contract: address, Method: method, Args: args},
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&address, "contract", "", "instance address")
	cmd.Flags().StringVar(&method, "method", "", "method name")
	cmd.Flags().StringVar(&rawArgs, "args", "", "json object of string args")
	return cmd
}

func getQueryCmd() *cobra.Command {
	var address, method, rawArgs string

	cmd := &cobra.Command{
		Use:           "query",
		Short:         "Run a read only contract method.",
		Example:       "xedition contract query --contract [address] --args '{\"method\":\"num_tokens\"}'",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := parseArgs(rawArgs)
			if err != nil {
				return err
			}
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			resp, err := n.manager.Query(&contract.QueryRequest{Contract: address, Method: method, Args: args})
			if err != nil {
				return err
			}
			fmt.Println(string(resp.Body))
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "contract", "", "instance address")
	cmd.Flags().StringVar(&method, "method", "Query", "method name")
	cmd.Flags().StringVar(&rawArgs, "args", "", "json object of string args")
	return cmd
}

func getStateCmd() *cobra.Command {
	var address, bucket, key string

	cmd := &cobra.Command{
		Use:           "state",
		Short:         "Read raw instance state.",
		Example:       "xedition contract state --contract [address] --bucket edition --key config",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			info, err := n.manager.ContractInfo(address)
			if err != nil {
				return err
			}
			value, err := n.manager.ReadState(info.Address, bucket, []byte(key))
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "contract", "", "instance address")
	cmd.Flags().StringVar(&bucket, "bucket", "", "bucket name")
	cmd.Flags().StringVar(&key, "key", "", "key")
	return cmd
}
