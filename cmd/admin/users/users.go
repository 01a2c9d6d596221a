package users

import (
	"fmt"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/hostbit/hostbit/cmd/admin/config/configkey"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	packageName string
	ram         int64
	disk        int64
	cpu         int64
	servers     int64
	email       string
	username    string
)

func init() {
	Users.AddCommand(get)
	Users.AddCommand(add)
	Users.AddCommand(remove)
	Users.AddCommand(plan)
	Users.AddCommand(resources)

	add.Flags().StringVarP(&email, "email", "e", "", "account email")
	add.Flags().StringVarP(&username, "username", "u", "", "account username")
	_ = add.MarkFlagRequired("email")

	plan.Flags().StringVarP(&packageName, "package", "p", "", "package to assign; empty clears to default")

	resources.Flags().Int64Var(&ram, "ram", -1, "extra ram")
	resources.Flags().Int64Var(&disk, "disk", -1, "extra disk")
	resources.Flags().Int64Var(&cpu, "cpu", -1, "extra cpu")
	resources.Flags().Int64Var(&servers, "servers", -1, "extra servers")
}

var Users = &cobra.Command{
	Use:   "users",
	Long:  "users",
	Short: "users",
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

var get = &cobra.Command{
	Use:   "get [id]",
	Short: "Shows a linked account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newRequest().Get(apiURL("api", "users", args[0]))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}

var add = &cobra.Command{
	Use:   "add [id]",
	Short: "Provisions a hosting account for an identity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := map[string]interface{}{"id": args[0], "email": email}
		if username != "" {
			body["username"] = username
		}

		resp, err := newRequest().SetBody(body).Post(apiURL("api", "users"))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}

var remove = &cobra.Command{
	Use:   "remove [id]",
	Short: "Tears down an account and all of its records",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newRequest().Delete(apiURL("api", "users", args[0]))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}

var plan = &cobra.Command{
	Use:   "plan [id]",
	Short: "Assigns a package, or clears it back to the default",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := map[string]interface{}{}
		if packageName != "" {
			body["package"] = packageName
		}

		resp, err := newRequest().SetBody(body).Patch(apiURL("api", "users", args[0], "plan"))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}

var resources = &cobra.Command{
	Use:   "resources [id]",
	Short: "Sets the account's extra resource grant",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := map[string]interface{}{}
		if ram >= 0 {
			body["ram"] = ram
		}
		if disk >= 0 {
			body["disk"] = disk
		}
		if cpu >= 0 {
			body["cpu"] = cpu
		}
		if servers >= 0 {
			body["servers"] = servers
		}

		resp, err := newRequest().SetBody(body).Patch(apiURL("api", "users", args[0], "resources"))
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Printf("%v\n", string(resp.Body()))
	},
}
