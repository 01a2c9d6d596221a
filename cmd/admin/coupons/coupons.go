package coupons

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"sort"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/hostbit/hostbit/cmd/admin/config/configkey"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	code    string
	coins   int64
	ram     int64
	disk    int64
	cpu     int64
	servers int64
)

func init() {
	Coupons.AddCommand(create)
	Coupons.AddCommand(list)
	Coupons.AddCommand(revoke)

	create.Flags().StringVarP(&code, "code", "c", "", "coupon code; generated when omitted")
	create.Flags().Int64Var(&coins, "coins", 0, "granted coins")
	create.Flags().Int64Var(&ram, "ram", 0, "granted ram")
	create.Flags().Int64Var(&disk, "disk", 0, "granted disk")
	create.Flags().Int64Var(&cpu, "cpu", 0, "granted cpu")
	create.Flags().Int64Var(&servers, "servers", 0, "granted servers")
}

var Coupons = &cobra.Command{
	Use:   "coupons",
	Long:  "coupons",
	Short: "coupons",
}

func newRequest() *resty.Request {
	client := resty.New()
	client.SetAuthToken(viper.GetString(configkey.HostbitAPICode))
	return client.R()
}

func apiURL(parts ...string) string {
	u, _ := url.Parse(viper.GetString(configkey.HostbitAPIURL))
	u.Path = path.Join(append([]string{u.Path}, parts...)...)
	logrus.Tracef("Using %s", u.String())
	return u.String()
}

var create = &cobra.Command{
	Use:   "create",
	Short: "Creates a coupon",
	Run: func(cmd *cobra.Command, args []string) {
		body := map[string]interface{}{
			"coins":   coins,
			"ram":     ram,
			"disk":    disk,
			"cpu":     cpu,
			"servers": servers,
		}
		if code != "" {
			body["code"] = code
		}

		resp, err := newRequest().SetBody(body).Post(apiURL("api", "coupons"))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}

var list = &cobra.Command{
	Use:   "list",
	Short: "Lists live coupons",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newRequest().Get(apiURL("api", "coupons"))
		if err != nil {
			fmt.Println(err)
			return
		}

		var body struct {
			Status  string `json:"status"`
			Coupons map[string]struct {
				Coins   int64 `json:"coins"`
				RAM     int64 `json:"ram"`
				Disk    int64 `json:"disk"`
				CPU     int64 `json:"cpu"`
				Servers int64 `json:"servers"`
			} `json:"coupons"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			fmt.Println(err)
			return
		}
		if body.Status != "success" {
			fmt.Println(body.Status)
			return
		}

		var codes []string
		for c := range body.Coupons {
			codes = append(codes, c)
		}
		sort.Strings(codes)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Code", "Coins", "RAM", "Disk", "CPU", "Servers"})
		for _, c := range codes {
			coupon := body.Coupons[c]
			table.Append([]string{
				c,
				strconv.FormatInt(coupon.Coins, 10),
				strconv.FormatInt(coupon.RAM, 10),
				strconv.FormatInt(coupon.Disk, 10),
				strconv.FormatInt(coupon.CPU, 10),
				strconv.FormatInt(coupon.Servers, 10),
			})
		}
		table.Render()
	},
}

var revoke = &cobra.Command{
	Use:   "revoke [code]",
	Short: "Revokes a coupon",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newRequest().Delete(apiURL("api", "coupons", args[0]))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}
