package provision

import (
	"fmt"
	"strconv"

	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/catalog"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/hostbit/hostbit/pkg/panel/requests"
	"github.com/hostbit/hostbit/pkg/panel/responses"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Reject is a policy or validation refusal; its reason is reported verbatim
// to the caller.
type Reject struct {
	Reason string
}

func (r *Reject) Error() string {
	return r.Reason
}

// Request is a server-creation request before numeric coercion. The three
// resource fields arrive as arbitrary JSON values and are coerced here so the
// reject order stays reproducible.
type Request struct {
	Name     string
	RAM      interface{}
	Disk     interface{}
	CPU      interface{}
	Egg      string
	Location string
}

type Options struct {
	AllowCreate bool
	AllowDelete bool
}

func OptionsFromConfig() Options {
	return Options{
		AllowCreate: viper.GetBool(configkey.AllowServerCreate),
		AllowDelete: viper.GetBool(configkey.AllowServerDelete),
	}
}

// Validator gates server creation and deletion against the account's
// effective entitlement, live usage from the control plane and per-egg and
// per-location policy.
type Validator struct {
	svc     *entitlement.Service
	catalog *catalog.Catalog
	panel   panel.Client
	opts    Options
}

func NewValidator(svc *entitlement.Service, cat *catalog.Catalog, panelClient panel.Client, opts Options) *Validator {
	return &Validator{svc: svc, catalog: cat, panel: panelClient, opts: opts}
}

// CreateServer admits or rejects a creation request. Checks short-circuit in
// a fixed order so error precedence is reproducible; an admitted request is
// submitted to the control plane and upstream failures surface as
// *panel.APIError carrying the upstream status.
func (v *Validator) CreateServer(id string, req Request) (*responses.Server, error) {
	if !v.opts.AllowCreate {
		return nil, &Reject{Reason: "server creation is disabled"}
	}

	panelID, found, err := v.svc.PanelID(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &Reject{Reason: "invalid userid"}
	}

	ram, ramOK := coerce(req.RAM)
	disk, diskOK := coerce(req.Disk)
	cpu, cpuOK := coerce(req.CPU)
	if !ramOK || !diskOK || !cpuOK {
		return nil, &Reject{Reason: "ram, disk, or cpu is not a number"}
	}

	user, err := v.panel.GetUser(panelID)
	if err != nil {
		if _, ok := err.(*panel.APIError); ok {
			logrus.Errorf("could not fetch panel user %d for %s", panelID, id)
			return nil, &Reject{Reason: "could not find user on panel"}
		}
		return nil, err
	}

	ent, err := v.svc.Resolve(id)
	if err != nil {
		return nil, err
	}
	ceiling := ent.Total()

	var servers []responses.Server
	if user.Attributes.Relationships != nil {
		servers = user.Attributes.Relationships.Servers.Data
	}
	if int64(len(servers)) >= ceiling.Servers {
		return nil, &Reject{Reason: "user has reached the max servers limit"}
	}

	location, ok := v.catalog.Location(req.Location)
	if !ok {
		return nil, &Reject{Reason: "invalid server location"}
	}
	if len(location.Packages) > 0 && !contains(location.Packages, ent.PackageName) {
		return nil, &Reject{Reason: "location for premium only"}
	}

	egg, ok := v.catalog.Egg(req.Egg)
	if !ok {
		return nil, &Reject{Reason: "invalid egg"}
	}

	// One consistently named running total per resource.
	var usedRAM, usedDisk, usedCPU int64
	for _, server := range servers {
		usedRAM += server.Attributes.Limits.Memory
		usedDisk += server.Attributes.Limits.Disk
		usedCPU += server.Attributes.Limits.CPU
	}

	if usedRAM+ram > ceiling.RAM {
		return nil, &Reject{Reason: fmt.Sprintf("exceeded ram amount by %d", ceiling.RAM-usedRAM)}
	}
	if usedDisk+disk > ceiling.Disk {
		return nil, &Reject{Reason: fmt.Sprintf("exceeded disk amount by %d", ceiling.Disk-usedDisk)}
	}
	if usedCPU+cpu > ceiling.CPU {
		return nil, &Reject{Reason: fmt.Sprintf("exceeded cpu amount by %d", ceiling.CPU-usedCPU)}
	}

	if egg.Maximum != nil {
		if ram > egg.Maximum.RAM {
			return nil, &Reject{Reason: "exceeded maximum ram for egg"}
		}
		if disk > egg.Maximum.Disk {
			return nil, &Reject{Reason: "exceeded maximum disk for egg"}
		}
		if cpu > egg.Maximum.CPU {
			return nil, &Reject{Reason: "exceeded maximum cpu for egg"}
		}
	}
	if egg.Minimum != nil {
		if ram < egg.Minimum.RAM {
			return nil, &Reject{Reason: "too little ram for egg"}
		}
		if disk < egg.Minimum.Disk {
			return nil, &Reject{Reason: "too little disk for egg"}
		}
		if cpu < egg.Minimum.CPU {
			return nil, &Reject{Reason: "too little cpu for egg"}
		}
	}

	payload := buildPayload(panelID, req.Name, req.Location, ram, disk, cpu, egg)
	return v.panel.CreateServer(payload)
}

// DeleteServer confirms the target belongs to the account's server set before
// delegating to the control plane.
func (v *Validator) DeleteServer(id string, serverID int64) error {
	if !v.opts.AllowDelete {
		return &Reject{Reason: "server deletion is disabled"}
	}

	panelID, found, err := v.svc.PanelID(id)
	if err != nil {
		return err
	}
	if !found {
		return &Reject{Reason: "invalid userid"}
	}

	user, err := v.panel.GetUser(panelID)
	if err != nil {
		if _, ok := err.(*panel.APIError); ok {
			return &Reject{Reason: "could not find user on panel"}
		}
		return err
	}

	owned := false
	if user.Attributes.Relationships != nil {
		for _, server := range user.Attributes.Relationships.Servers.Data {
			if server.Attributes.ID == serverID {
				owned = true
				break
			}
		}
	}
	if !owned {
		return &Reject{Reason: "invalid serverid"}
	}

	return v.panel.DeleteServer(serverID)
}

// buildPayload merges the egg template with the requested name, resources and
// location. Template gaps fall back to the historical defaults: no swap,
// io 500, no backups.
func buildPayload(panelID int64, name string, location string, ram, disk, cpu int64, egg catalog.Egg) requests.CreateServer {
	limits := requests.Limits{
		Memory: ram,
		Disk:   disk,
		CPU:    cpu,
		IO:     500,
	}
	if egg.Info.Limits != nil {
		limits.Swap = egg.Info.Limits.Swap
		limits.IO = egg.Info.Limits.IO
	}

	var features requests.FeatureLimits
	if egg.Info.FeatureLimits != nil {
		features = requests.FeatureLimits{
			Databases:   egg.Info.FeatureLimits.Databases,
			Backups:     egg.Info.FeatureLimits.Backups,
			Allocations: egg.Info.FeatureLimits.Allocations,
		}
	}

	environment := egg.Info.Environment
	if environment == nil {
		environment = map[string]interface{}{}
	}

	return requests.CreateServer{
		Name:          name,
		User:          panelID,
		Egg:           egg.Info.Egg,
		DockerImage:   egg.Info.DockerImage,
		Startup:       egg.Info.Startup,
		Environment:   environment,
		Limits:        limits,
		FeatureLimits: features,
		Deploy: requests.Deploy{
			Locations: []string{location},
			PortRange: []string{},
		},
	}
}

// coerce interprets a JSON value as a whole number the way the request
// fields historically allowed both numbers and numeric strings.
func coerce(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return int64(parsed), true
	default:
		return 0, false
	}
}

func contains(list []string, item string) bool {
	for _, entry := range list {
		if entry == item {
			return true
		}
	}
	return false
}
