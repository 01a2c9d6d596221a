package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/pkg/api/requests"
	"github.com/hostbit/hostbit/pkg/coupons"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/models"
)

func (a *API) getCoupons(c *gin.Context) {
	if code := c.Query("code"); code != "" {
		coupon, found, err := a.ledger.Get(code)
		if err != nil {
			status(c, "database error")
			return
		}
		if !found {
			status(c, "invalid coupon code")
			return
		}

		success(c, gin.H{"coupon": coupon})
		return
	}

	list, err := a.ledger.List()
	if err != nil {
		status(c, "database error")
		return
	}

	success(c, gin.H{"coupons": list})
}

func (a *API) createCoupon(c *gin.Context) {
	var req requests.CreateCoupon
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}

	code, err := a.ledger.Create(req.Code, models.Coupon{
		Coins:   req.Coins,
		RAM:     req.RAM,
		Disk:    req.Disk,
		CPU:     req.CPU,
		Servers: req.Servers,
	})
	var negative *coupons.NegativeValueError
	var rangeErr *coupons.RangeError
	switch {
	case errors.Is(err, coupons.ErrIllegalCharacters):
		status(c, "illegal characters")
	case errors.Is(err, coupons.ErrEmptyCoupon):
		status(c, "cannot create empty coupon")
	case errors.As(err, &negative):
		status(c, negative.Error())
	case errors.As(err, &rangeErr):
		status(c, rangeErr.Error())
	case err != nil:
		status(c, "database error")
	default:
		success(c, gin.H{"code": code})
	}
}

func (a *API) revokeCoupon(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		status(c, "missing code")
		return
	}

	err := a.ledger.Revoke(code)
	switch {
	case errors.Is(err, coupons.ErrInvalidCode):
		status(c, "invalid code")
	case err != nil:
		status(c, "database error")
	default:
		status(c, "success")
	}
}

func (a *API) redeemCoupon(c *gin.Context) {
	var req requests.RedeemCoupon
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}
	if req.ID == "" {
		status(c, "missing id")
		return
	}
	if req.Code == "" {
		status(c, "missing code")
		return
	}

	coupon, err := a.ledger.Redeem(a.svc, req.ID, req.Code)
	var rangeErr *entitlement.RangeError
	switch {
	case errors.Is(err, coupons.ErrInvalidCode):
		status(c, "invalid code")
	case errors.Is(err, entitlement.ErrUnknownAccount):
		status(c, "invalid id")
	case errors.Is(err, entitlement.ErrCoinsOutOfRange):
		status(c, "too small or big coins")
	case errors.As(err, &rangeErr):
		status(c, rangeErr.Error())
	case err != nil:
		status(c, "database error")
	default:
		success(c, gin.H{"coupon": coupon})
	}
}
