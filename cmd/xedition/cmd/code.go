package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CodeCmd struct {
	BaseCmd
}

func GetCodeCmd() *CodeCmd {
	codeCmdIns := new(CodeCmd)

	codeCmdIns.cmd = &cobra.Command{
		Use:           "code",
		Short:         "Code operation.",
		Example:       "xedition code store cw721",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	codeCmdIns.cmd.AddCommand(getStoreCodeCmd())
	return codeCmdIns
}

func getStoreCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "store [name]",
		Short:         "Store a kernel contract as code and print its code id.",
		Example:       "xedition code store edition",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			codeID, err := n.manager.StoreCode(args[0])
			if err != nil {
				return err
			}
			fmt.Println(codeID)
			return nil
		},
	}
}
