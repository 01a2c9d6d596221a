package requests

// CreateAccount provisions a hosting account for an identity without going
// through the OAuth flow (admin initiated).
type CreateAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type SetPlan struct {
	Package *string `json:"package"`
}

// SetResources carries a partial extra update; nil fields are left alone.
type SetResources struct {
	RAM     *int64 `json:"ram"`
	Disk    *int64 `json:"disk"`
	CPU     *int64 `json:"cpu"`
	Servers *int64 `json:"servers"`
}

type SetCoins struct {
	ID    string `json:"id"`
	Coins *int64 `json:"coins"`
}

type CreateCoupon struct {
	Code    string `json:"code"`
	Coins   int64  `json:"coins"`
	RAM     int64  `json:"ram"`
	Disk    int64  `json:"disk"`
	CPU     int64  `json:"cpu"`
	Servers int64  `json:"servers"`
}

type RedeemCoupon struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}
