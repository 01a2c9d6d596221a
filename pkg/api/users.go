package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/pkg/api/requests"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/identity"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/sirupsen/logrus"
)

func (a *API) getUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		status(c, "missing id")
		return
	}

	panelID, found, err := a.svc.PanelID(id)
	if err != nil {
		status(c, "database error")
		return
	}
	if !found {
		status(c, "invalid id")
		return
	}

	ent, err := a.svc.Resolve(id)
	if err != nil {
		status(c, "database error")
		return
	}

	user, err := a.panel.GetUser(panelID)
	if err != nil {
		logrus.Errorf("could not fetch panel user %d for identity %s", panelID, id)
		status(c, "could not find user on panel")
		return
	}

	var coins interface{}
	if coinsEnabled() {
		balance, err := a.svc.Coins(id)
		if err != nil {
			status(c, "database error")
			return
		}
		coins = balance
	}

	success(c, gin.H{
		"package": gin.H{
			"name":    ent.PackageName,
			"ram":     ent.Package.RAM,
			"disk":    ent.Package.Disk,
			"cpu":     ent.Package.CPU,
			"servers": ent.Package.Servers,
		},
		"extra":    ent.Extra,
		"userinfo": user,
		"coins":    coins,
	})
}

func (a *API) createAccount(c *gin.Context) {
	var req requests.CreateAccount
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}
	if req.ID == "" {
		status(c, "missing id")
		return
	}
	if req.Email == "" {
		status(c, "missing email")
		return
	}
	if req.Username == "" {
		req.Username = req.ID
	}

	panelID, password, err := a.linker.Provision(&identity.Profile{
		ID:            req.ID,
		Username:      req.Username,
		Discriminator: "0",
		Email:         req.Email,
		Verified:      true,
	})
	if err != nil {
		var linkErr *identity.LinkError
		if errors.As(err, &linkErr) {
			switch linkErr.Code {
			case identity.CodeDisabled:
				status(c, "new accounts are disabled")
			case identity.CodeAnotherAccount:
				status(c, "account in use by another user")
			default:
				status(c, "could not provision account")
			}
			return
		}
		if apiErr, ok := err.(*panel.APIError); ok {
			c.JSON(200, gin.H{"status": "error on create", "code": apiErr.StatusCode})
			return
		}
		status(c, "database error")
		return
	}

	success(c, gin.H{"panel_id": panelID, "password": password})
}

func (a *API) setPlan(c *gin.Context) {
	id := c.Param("id")

	var req requests.SetPlan
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}

	name := ""
	if req.Package != nil {
		name = *req.Package
	}

	err := a.svc.SetPlan(id, name)
	switch {
	case errors.Is(err, entitlement.ErrUnknownAccount):
		status(c, "invalid id")
	case errors.Is(err, entitlement.ErrInvalidPackage):
		status(c, "invalid package")
	case err != nil:
		status(c, "database error")
	default:
		status(c, "success")
	}
}

func (a *API) setResources(c *gin.Context) {
	id := c.Param("id")

	var req requests.SetResources
	if err := c.ShouldBindJSON(&req); err != nil {
		status(c, "body must be an object")
		return
	}
	if req.RAM == nil && req.Disk == nil && req.CPU == nil && req.Servers == nil {
		status(c, "missing variables")
		return
	}

	err := a.svc.UpdateExtra(id, req.RAM, req.Disk, req.CPU, req.Servers)
	var rangeErr *entitlement.RangeError
	switch {
	case errors.Is(err, entitlement.ErrUnknownAccount):
		status(c, "invalid id")
	case errors.As(err, &rangeErr):
		status(c, rangeErr.Error())
	case err != nil:
		status(c, "database error")
	default:
		status(c, "success")
	}
}

func (a *API) removeAccount(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		status(c, "missing id")
		return
	}

	err := a.svc.RemoveAccount(id)
	switch {
	case errors.Is(err, entitlement.ErrUnknownAccount):
		status(c, "invalid id")
	case err != nil:
		status(c, "database error")
	default:
		status(c, "success")
	}
}
