package models

// Record key naming for the flat key-value namespace. The prefixes are part
// of the stored data format and must not change between releases.

const (
	// UsersSet holds every hosting-account id known to the dashboard.
	UsersSet = "users"
	// IPSet holds every network origin currently claimed by an identity.
	IPSet = "ips"
	// CouponsSet indexes the currently live coupon codes.
	CouponsSet = "coupons"
)

func UserKey(id string) string    { return "users-" + id }
func PackageKey(id string) string { return "package-" + id }
func ExtraKey(id string) string   { return "extra-" + id }
func CoinsKey(id string) string   { return "coins-" + id }
func IPKey(id string) string      { return "ip-" + id }
func CouponKey(code string) string { return "coupon-" + code }
