package catalog

import (
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Location is a configured deployment target. A non-empty Packages list
// restricts the location to accounts assigned one of those package names.
type Location struct {
	Name     string
	Packages []string `mapstructure:"package"`
}

// EggBounds are per-egg resource bounds checked independently of the
// account ceiling.
type EggBounds struct {
	RAM  int64
	Disk int64
	CPU  int64
}

// EggInfoLimits are the non-resource server limits carried by an egg
// template into the creation payload.
type EggInfoLimits struct {
	Swap int64
	IO   int64
}

type FeatureLimits struct {
	Databases   int64
	Backups     int64
	Allocations int64
}

// EggInfo is the creation-payload template for an egg: everything the control
// plane needs besides the requested name, resources and location.
type EggInfo struct {
	Egg           int64
	DockerImage   string `mapstructure:"docker_image"`
	Startup       string
	Environment   map[string]interface{}
	Limits        *EggInfoLimits
	FeatureLimits *FeatureLimits `mapstructure:"feature_limits"`
}

type Egg struct {
	Minimum *EggBounds
	Maximum *EggBounds
	Info    EggInfo
}

// Catalog is the immutable static-configuration snapshot: package templates,
// locations and eggs. It is loaded once at startup and handed out read-only;
// nothing reloads it per request.
type Catalog struct {
	DefaultPackage string
	Packages       map[string]models.Resources
	Locations      map[string]Location
	Eggs           map[string]Egg
}

func Load() (*Catalog, error) {
	c := Catalog{
		DefaultPackage: viper.GetString(configkey.PackagesDefault),
		Packages:       map[string]models.Resources{},
		Locations:      map[string]Location{},
		Eggs:           map[string]Egg{},
	}

	if err := viper.UnmarshalKey(configkey.PackagesList, &c.Packages); err != nil {
		logrus.Error(err)
		return nil, err
	}
	if err := viper.UnmarshalKey(configkey.Locations, &c.Locations); err != nil {
		logrus.Error(err)
		return nil, err
	}
	if err := viper.UnmarshalKey(configkey.Eggs, &c.Eggs); err != nil {
		logrus.Error(err)
		return nil, err
	}

	return &c, nil
}

// Package resolves an assigned package name to its template. An empty name
// selects the default package; a name that no longer resolves degrades to an
// all-zero template so that configuration drift never breaks resolution.
func (c *Catalog) Package(name string) (string, models.Resources) {
	if name == "" {
		name = c.DefaultPackage
	}

	template, ok := c.Packages[name]
	if !ok {
		logrus.Warnf("package %q is not configured, using zero template", name)
		return name, models.Resources{}
	}

	return name, template
}

func (c *Catalog) Location(name string) (Location, bool) {
	location, ok := c.Locations[name]
	return location, ok
}

func (c *Catalog) Egg(name string) (Egg, bool) {
	egg, ok := c.Eggs[name]
	return egg, ok
}
