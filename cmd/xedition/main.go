package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xedition/cmd/xedition/cmd"
)

func main() {
	rootCmd, err := NewXEditionCommand()
	if err != nil {
		log.Fatalf("new command failed.err:%v", err)
	}

	if err = rootCmd.Execute(); err != nil {
		log.Fatalf("command exec failed.err:%v", err)
	}
}

func NewXEditionCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "xedition <command> [arguments]",
		Short:         "xedition runs limited edition NFT contracts on a local state db.",
		Long:          "xedition runs limited edition NFT contracts on a local state db.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       "xedition edition deploy --conf ./conf/env.yaml --file ./conf/edition.yaml",
	}
	cmd.BindGlobalFlags(rootCmd)

	// cmd version
	rootCmd.AddCommand(cmd.GetVersionCmd().GetCmd())
	// account new|address
	rootCmd.AddCommand(cmd.GetAccountCmd().GetCmd())
	// code store
	rootCmd.AddCommand(cmd.GetCodeCmd().GetCmd())
	// contract instantiate|invoke|query|state
	rootCmd.AddCommand(cmd.GetContractCmd().GetCmd())
	// edition deploy|buy
	rootCmd.AddCommand(cmd.GetEditionCmd().GetCmd())
	// token balance
	rootCmd.AddCommand(cmd.GetTokenCmd().GetCmd())
	return rootCmd, nil
}
