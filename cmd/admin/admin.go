package admin

import (
	"fmt"
	"os"
	"sort"

	"github.com/hostbit/hostbit/cmd/admin/coins"
	admincfg "github.com/hostbit/hostbit/cmd/admin/config"
	"github.com/hostbit/hostbit/cmd/admin/coupons"
	"github.com/hostbit/hostbit/cmd/admin/users"
	"github.com/hostbit/hostbit/config"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	for key, val := range admincfg.DefaultValues {
		viper.SetDefault(key, val)
	}

	Admin.AddCommand(users.Users)
	Admin.AddCommand(coins.Coins)
	Admin.AddCommand(coupons.Coupons)
	Admin.AddCommand(info)
}

var Admin = &cobra.Command{
	Use:              "hostbit-admin",
	TraverseChildren: true,
}

var info = &cobra.Command{
	Use:   "info",
	Short: "info",
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Value"})

		var defaultValueKeys []string
		for k := range config.DefaultValues {
			defaultValueKeys = append(defaultValueKeys, k)
		}

		sort.Strings(defaultValueKeys)

		logrus.Infof("Defaults were: ")
		for _, k := range defaultValueKeys {
			table.Append([]string{k, fmt.Sprintf("%+v", config.DefaultValues[k])})
		}
		table.Render()

		table = tablewriter.NewWriter(os.Stdout)
		logrus.Infof("Config values")
		table.SetHeader([]string{"Name", "Value"})

		allKeys := viper.AllKeys()
		sort.Strings(allKeys)

		for _, k := range allKeys {
			table.Append([]string{k, fmt.Sprintf("%+v", viper.Get(k))})
		}
		table.Render()
	},
}
