package coins

import (
	"fmt"
	"net/url"
	"path"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/hostbit/hostbit/cmd/admin/config/configkey"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	Coins.AddCommand(set)
	Coins.AddCommand(add)
}

var Coins = &cobra.Command{
	Use:   "coins",
	Long:  "coins",
	Short: "coins",
}

func send(method string, id string, amount int64) {
	client := resty.New()
	client.SetAuthToken(viper.GetString(configkey.HostbitAPICode))
	request := client.R()
	request.SetBody(map[string]interface{}{"id": id, "coins": amount})

	u, _ := url.Parse(viper.GetString(configkey.HostbitAPIURL))
	endpoint := "setcoins"
	if method == "PATCH" {
		endpoint = "addcoins"
	}
	u.Path = path.Join(u.Path, "api", endpoint)
	logrus.Tracef("Using %s", u.String())

	var err error
	var resp *resty.Response
	if method == "PATCH" {
		resp, err = request.Patch(u.String())
	} else {
		resp, err = request.Post(u.String())
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%v\n", string(resp.Body()))
}

var set = &cobra.Command{
	Use:   "set [id] [amount]",
	Short: "Sets an absolute coin balance",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println(err)
			return
		}
		send("POST", args[0], amount)
	},
}

var add = &cobra.Command{
	Use:   "add [id] [delta]",
	Short: "Applies a delta to a coin balance",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		delta, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println(err)
			return
		}
		send("PATCH", args[0], delta)
	},
}
