package main

import (
	"fmt"
	"goldbach/sieve"
	"goldbach/types"
	"time"

	"github.com/spf13/cobra"
)

var (
	primesLimit uint64
	primesOut   string
)

var primesCmd = &cobra.Command{
	Use:   "primes",
	Short: "生成二进制素数表文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		begin := time.Now()
		table, err := sieve.New(primesLimit)
		if err != nil {
			return err
		}
		if err := table.WriteFile(primesOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写出 %d 个素数 (上限 %d) 到 %s, 用时 %s\n",
			table.Count(), table.Limit(), primesOut, time.Since(begin).Round(time.Millisecond))
		return nil
	},
}

func init() {
	primesCmd.Flags().Uint64Var(&primesLimit, "limit", uint64(types.DefaultSieveLimit), "素数表上限")
	primesCmd.Flags().StringVarP(&primesOut, "out", "o", "primes.bin", "输出文件")
}
