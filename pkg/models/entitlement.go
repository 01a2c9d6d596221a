package models

// MaxResourceValue bounds every stored scalar (coins, extra fields) so that
// arithmetic on them can never overflow an int64.
const MaxResourceValue int64 = 999999999999999

// Resources is the componentwise quota vector shared by packages, extras,
// coupons and live usage.
type Resources struct {
	RAM     int64 `json:"ram"`
	Disk    int64 `json:"disk"`
	CPU     int64 `json:"cpu"`
	Servers int64 `json:"servers"`
}

func (r Resources) Add(other Resources) Resources {
	return Resources{
		RAM:     r.RAM + other.RAM,
		Disk:    r.Disk + other.Disk,
		CPU:     r.CPU + other.CPU,
		Servers: r.Servers + other.Servers,
	}
}

func (r Resources) IsZero() bool {
	return r.RAM == 0 && r.Disk == 0 && r.CPU == 0 && r.Servers == 0
}

// Entitlement is the resolved ceiling for an account: the assigned package
// template plus any manually granted extra. It is derived state, never stored.
type Entitlement struct {
	PackageName string    `json:"package"`
	Package     Resources `json:"limits"`
	Extra       Resources `json:"extra"`
}

// Total is the effective ceiling live usage is compared against.
func (e Entitlement) Total() Resources {
	return e.Package.Add(e.Extra)
}

// Coupon is a redeemable, code-keyed grant. At least one field is non-zero.
type Coupon struct {
	Coins   int64 `json:"coins"`
	RAM     int64 `json:"ram"`
	Disk    int64 `json:"disk"`
	CPU     int64 `json:"cpu"`
	Servers int64 `json:"servers"`
}

func (c Coupon) Resources() Resources {
	return Resources{RAM: c.RAM, Disk: c.Disk, CPU: c.CPU, Servers: c.Servers}
}

func (c Coupon) IsZero() bool {
	return c.Coins == 0 && c.Resources().IsZero()
}
