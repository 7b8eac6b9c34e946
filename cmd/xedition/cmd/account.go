package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/lib/crypto/client"
)

// account is a key dir as written by "account new".
type account struct {
	Address    string
	PublicKey  string
	PrivateKey string
}

func loadAccount(dir string) (*account, error) {
	read := func(name string) (string, error) {
		buf, err := ioutil.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("read %s failed.err:%v", name, err)
		}
		return strings.TrimSpace(string(buf)), nil
	}

	acc := new(account)
	var err error
	if acc.Address, err = read("address"); err != nil {
		return nil, err
	}
	if acc.PublicKey, err = read("public.key"); err != nil {
		return nil, err
	}
	if acc.PrivateKey, err = read("private.key"); err != nil {
		return nil, err
	}
	addr, err := client.AddressFromPublicKey(acc.PublicKey)
	if err != nil {
		return nil, err
	}
	if addr != acc.Address {
		return nil, fmt.Errorf("address %s does not match public key in %s", acc.Address, dir)
	}
	return acc, nil
}

func (a *account) sign(tx *contract.Tx) error {
	digest, err := tx.Digest()
	if err != nil {
		return err
	}
	sign, err := client.Sign(a.PrivateKey, digest)
	if err != nil {
		return err
	}
	tx.AuthRequireSigns = []contract.SignatureInfo{{PublicKey: a.PublicKey, Sign: sign}}
	return nil
}

type AccountCmd struct {
	BaseCmd
}

func GetAccountCmd() *AccountCmd {
	accountCmdIns := new(AccountCmd)

	accountCmdIns.cmd = &cobra.Command{
		Use:           "account",
		Short:         "Account key operation.",
		Example:       "xedition account new --output ./keys",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	accountCmdIns.cmd.AddCommand(getNewAccountCmd())
	accountCmdIns.cmd.AddCommand(getAccountAddressCmd())
	return accountCmdIns
}

func getNewAccountCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:           "new",
		Short:         "Create an account and write its keys into a dir.",
		Example:       "xedition account new --output ./keys",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(output, os.ModePerm); err != nil {
				return err
			}
			if err := client.NewAccount(output); err != nil {
				return err
			}
			acc, err := loadAccount(output)
			if err != nil {
				return err
			}
			fmt.Println(acc.Address)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "./data/keys", "key dir")
	return cmd
}

func getAccountAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "address [keydir]",
		Short:         "Print the address of a key dir.",
		Example:       "xedition account address ./data/keys",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := loadAccount(args[0])
			if err != nil {
				return err
			}
			fmt.Println(acc.Address)
			return nil
		},
	}
}
