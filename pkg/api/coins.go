package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/pkg/api/requests"
	"github.com/hostbit/hostbit/pkg/entitlement"
)

func (a *API) setCoins(c *gin.Context) {
	var req requests.SetCoins
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}
	if req.ID == "" {
		status(c, "missing id")
		return
	}
	if req.Coins == nil {
		status(c, "coins must be a number")
		return
	}

	err := a.svc.SetCoins(req.ID, *req.Coins)
	switch {
	case errors.Is(err, entitlement.ErrUnknownAccount):
		status(c, "invalid id")
	case errors.Is(err, entitlement.ErrCoinsOutOfRange):
		status(c, "too small or big coins")
	case err != nil:
		status(c, "database error")
	default:
		status(c, "success")
	}
}

func (a *API) addCoins(c *gin.Context) {
	var req requests.SetCoins
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}
	if req.ID == "" {
		status(c, "missing id")
		return
	}
	if req.Coins == nil {
		status(c, "coins must be a number")
		return
	}

	balance, err := a.svc.AddCoins(req.ID, *req.Coins)
	switch {
	case errors.Is(err, entitlement.ErrUnknownAccount):
		status(c, "invalid id")
	case errors.Is(err, entitlement.ErrCoinsOutOfRange):
		status(c, "too small or big coins")
	case err != nil:
		status(c, "database error")
	default:
		success(c, gin.H{"coins": balance})
	}
}
