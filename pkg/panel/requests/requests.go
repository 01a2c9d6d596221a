package requests

type CreateUser struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password,omitempty"`
}

type Limits struct {
	Memory int64 `json:"memory"`
	Swap   int64 `json:"swap"`
	Disk   int64 `json:"disk"`
	IO     int64 `json:"io"`
	CPU    int64 `json:"cpu"`
}

type FeatureLimits struct {
	Databases   int64 `json:"databases"`
	Backups     int64 `json:"backups"`
	Allocations int64 `json:"allocations"`
}

type Deploy struct {
	Locations   []string `json:"locations"`
	DedicatedIP bool     `json:"dedicated_ip"`
	PortRange   []string `json:"port_range"`
}

type CreateServer struct {
	Name          string                 `json:"name"`
	User          int64                  `json:"user"`
	Egg           int64                  `json:"egg"`
	DockerImage   string                 `json:"docker_image"`
	Startup       string                 `json:"startup"`
	Environment   map[string]interface{} `json:"environment"`
	Limits        Limits                 `json:"limits"`
	FeatureLimits FeatureLimits          `json:"feature_limits"`
	Deploy        Deploy                 `json:"deploy"`
}
