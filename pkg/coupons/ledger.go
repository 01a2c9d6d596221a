package coupons

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/sirupsen/logrus"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

var (
	// ErrIllegalCharacters is returned when a caller-supplied code contains
	// anything outside [A-Za-z0-9].
	ErrIllegalCharacters = errors.New("illegal characters")
	// ErrEmptyCoupon is returned when every field of a grant is zero.
	ErrEmptyCoupon = errors.New("cannot create empty coupon")
	// ErrInvalidCode covers both a malformed and an unknown code; the two are
	// deliberately not distinguished.
	ErrInvalidCode = errors.New("invalid code")
)

// NegativeValueError names the grant field that was negative.
type NegativeValueError struct {
	Field string
}

func (e *NegativeValueError) Error() string {
	return e.Field + " is less than 0"
}

// RangeError names the grant field that exceeds the storable ceiling.
type RangeError struct {
	Field string
}

func (e *RangeError) Error() string {
	return "exceeded " + e.Field + " size"
}

// Ledger issues, looks up and revokes redeemable grants keyed by code.
type Ledger struct {
	store kvstore.Store
}

func NewLedger(store kvstore.Store) *Ledger {
	return &Ledger{store: store}
}

// Create persists a coupon under the given code, or under a generated one
// when code is empty, and returns the code used. Caller-supplied codes are
// truncated to 200 characters before validation.
func (l *Ledger) Create(code string, grant models.Coupon) (string, error) {
	if code != "" {
		if len(code) > 200 {
			code = code[:200]
		}
		if !codePattern.MatchString(code) {
			return "", ErrIllegalCharacters
		}
	} else {
		code = strings.ReplaceAll(uuid.New().String(), "-", "")
	}

	if grant.Coins < 0 {
		return "", &NegativeValueError{Field: "coins"}
	}
	if grant.RAM < 0 {
		return "", &NegativeValueError{Field: "ram"}
	}
	if grant.Disk < 0 {
		return "", &NegativeValueError{Field: "disk"}
	}
	if grant.CPU < 0 {
		return "", &NegativeValueError{Field: "cpu"}
	}
	if grant.Servers < 0 {
		return "", &NegativeValueError{Field: "servers"}
	}

	if grant.Coins > models.MaxResourceValue {
		return "", &RangeError{Field: "coins"}
	}
	if grant.RAM > models.MaxResourceValue {
		return "", &RangeError{Field: "ram"}
	}
	if grant.Disk > models.MaxResourceValue {
		return "", &RangeError{Field: "disk"}
	}
	if grant.CPU > models.MaxResourceValue {
		return "", &RangeError{Field: "cpu"}
	}
	if grant.Servers > models.MaxResourceValue {
		return "", &RangeError{Field: "servers"}
	}

	if grant.IsZero() {
		return "", ErrEmptyCoupon
	}

	if err := l.store.Set(models.CouponKey(code), grant); err != nil {
		return "", err
	}
	if err := l.store.SetAdd(models.CouponsSet, code); err != nil {
		return "", err
	}

	return code, nil
}

// Get looks up a coupon by code. A code failing the charset pattern is
// treated as not found, not as a format error.
func (l *Ledger) Get(code string) (models.Coupon, bool, error) {
	if !codePattern.MatchString(code) {
		return models.Coupon{}, false, nil
	}

	var coupon models.Coupon
	found, err := l.store.Get(models.CouponKey(code), &coupon)
	return coupon, found, err
}

// List returns every live coupon keyed by code.
func (l *Ledger) List() (map[string]models.Coupon, error) {
	codes, err := l.store.SetMembers(models.CouponsSet)
	if err != nil {
		return nil, err
	}

	coupons := map[string]models.Coupon{}
	for _, code := range codes {
		var coupon models.Coupon
		found, err := l.store.Get(models.CouponKey(code), &coupon)
		if err != nil {
			return nil, err
		}
		if found {
			coupons[code] = coupon
		}
	}

	return coupons, nil
}

// Revoke deletes a coupon. A malformed or unknown code reports ErrInvalidCode.
func (l *Ledger) Revoke(code string) error {
	_, found, err := l.Get(code)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidCode
	}

	if err := l.store.Delete(models.CouponKey(code)); err != nil {
		return err
	}

	return l.store.SetRemove(models.CouponsSet, code)
}

// Redeem applies a coupon's grant to an account and revokes the code.
// Coins are added as a delta clamped to the balance ceiling; resources merge
// into the account's extra record. A coupon is single use.
func (l *Ledger) Redeem(svc *entitlement.Service, id string, code string) (models.Coupon, error) {
	coupon, found, err := l.Get(code)
	if err != nil {
		return models.Coupon{}, err
	}
	if !found {
		return models.Coupon{}, ErrInvalidCode
	}

	exists, err := svc.AccountExists(id)
	if err != nil {
		return models.Coupon{}, err
	}
	if !exists {
		return models.Coupon{}, entitlement.ErrUnknownAccount
	}

	if coupon.Coins > 0 {
		current, err := svc.Coins(id)
		if err != nil {
			return models.Coupon{}, err
		}
		// Saturating add; a plain sum near the ceiling could wrap.
		balance := models.MaxResourceValue
		if coupon.Coins <= models.MaxResourceValue-current {
			balance = current + coupon.Coins
		}
		if err := svc.SetCoins(id, balance); err != nil {
			return models.Coupon{}, err
		}
	}

	if !coupon.Resources().IsZero() {
		if err := svc.AddExtra(id, coupon.Resources()); err != nil {
			return models.Coupon{}, err
		}
	}

	if err := l.Revoke(code); err != nil {
		logrus.Error(err)
		return models.Coupon{}, err
	}

	return coupon, nil
}
