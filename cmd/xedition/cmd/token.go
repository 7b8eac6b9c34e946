package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contracts/cw20"
)

type TokenCmd struct {
	BaseCmd
}

func GetTokenCmd() *TokenCmd {
	tokenCmdIns := new(TokenCmd)

	tokenCmdIns.cmd = &cobra.Command{
		Use:           "token",
		Short:         "Payment token operation.",
		Example:       "xedition token balance --token [address] --address [account]",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	tokenCmdIns.cmd.AddCommand(getBalanceCmd())
	return tokenCmdIns
}

func getBalanceCmd() *cobra.Command {
	var token, address string

	cmd := &cobra.Command{
		Use:           "balance",
		Short:         "Show a token balance in whole units.",
		Example:       "xedition token balance --token [address] --address [account]",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := openNode(GFlagConf)
			if err != nil {
				return err
			}
			defer n.Close()

			balance, err := queryBalance(n.manager, token, address)
			if err != nil {
				return err
			}
			info, err := queryTokenInfo(n.manager, token)
			if err != nil {
				return err
			}
			fmt.Println(formatAmount(balance, info.Decimals), info.Symbol)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "cw20 address")
	cmd.Flags().StringVar(&address, "address", "", "account address")
	return cmd
}

func queryBalance(mgr contract.Manager, token, address string) (string, error) {
	resp, err := mgr.Query(&contract.QueryRequest{
		Contract: token,
		Method:   cw20.Query,
		Args: map[string][]byte{
			"method":  []byte(cw20.QueryBalance),
			"address": []byte(address),
		},
	})
	if err != nil {
		return "", err
	}
	bal := new(cw20.BalanceResponse)
	if err := json.Unmarshal(resp.Body, bal); err != nil {
		return "", err
	}
	return bal.Balance, nil
}

func queryTokenInfo(mgr contract.Manager, token string) (*cw20.TokenInfo, error) {
	resp, err := mgr.Query(&contract.QueryRequest{
		Contract: token,
		Method:   cw20.Query,
		Args:     map[string][]byte{"method": []byte(cw20.QueryTokenInfo)},
	})
	if err != nil {
		return nil, err
	}
	info := new(cw20.TokenInfo)
	if err := json.Unmarshal(resp.Body, info); err != nil {
		return nil, err
	}
	return info, nil
}

// formatAmount shifts an integer amount by the token decimals.
func formatAmount(amount string, decimals uint8) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return d.Shift(-int32(decimals)).String()
}
