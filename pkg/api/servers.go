package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/hostbit/hostbit/pkg/provision"
)

func (a *API) createServer(c *gin.Context) {
	id := c.Param("id")

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		status(c, "body must be an object")
		return
	}

	name, _ := body["name"].(string)
	if name == "" {
		status(c, "missing server name")
		return
	}
	if _, ok := body["ram"]; !ok {
		status(c, "missing server ram")
		return
	}
	if _, ok := body["disk"]; !ok {
		status(c, "missing server disk")
		return
	}
	if _, ok := body["cpu"]; !ok {
		status(c, "missing server cpu")
		return
	}
	egg, _ := body["egg"].(string)
	if egg == "" {
		status(c, "missing server egg")
		return
	}
	location, _ := body["location"].(string)
	if location == "" {
		status(c, "missing server location")
		return
	}

	server, err := a.validator.CreateServer(id, provision.Request{
		Name:     name,
		RAM:      body["ram"],
		Disk:     body["disk"],
		CPU:      body["cpu"],
		Egg:      egg,
		Location: location,
	})
	if err != nil {
		if reject, ok := err.(*provision.Reject); ok {
			status(c, reject.Reason)
			return
		}
		if apiErr, ok := err.(*panel.APIError); ok {
			c.JSON(200, gin.H{"status": "error on create", "code": apiErr.StatusCode})
			return
		}
		status(c, "error on create")
		return
	}

	success(c, gin.H{"data": server})
}

func (a *API) deleteServer(c *gin.Context) {
	id := c.Param("id")

	serverID, err := strconv.ParseInt(c.Param("serverid"), 10, 64)
	if err != nil {
		status(c, "invalid serverid")
		return
	}

	err = a.validator.DeleteServer(id, serverID)
	if err != nil {
		if reject, ok := err.(*provision.Reject); ok {
			status(c, reject.Reason)
			return
		}
		if apiErr, ok := err.(*panel.APIError); ok {
			c.JSON(200, gin.H{"status": "error on delete", "code": apiErr.StatusCode})
			return
		}
		status(c, "error on delete")
		return
	}

	status(c, "success")
}
