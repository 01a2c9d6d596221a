package responses

// Wire shapes for the slice of the control-plane application API this
// dashboard consumes. Only the fields we read are declared.

type Limits struct {
	Memory int64 `json:"memory"`
	Swap   int64 `json:"swap"`
	Disk   int64 `json:"disk"`
	IO     int64 `json:"io"`
	CPU    int64 `json:"cpu"`
}

type ServerAttributes struct {
	ID     int64  `json:"id"`
	UUID   string `json:"uuid"`
	Name   string `json:"name"`
	User   int64  `json:"user"`
	Limits Limits `json:"limits"`
}

type Server struct {
	Object     string           `json:"object"`
	Attributes ServerAttributes `json:"attributes"`
}

type ServerList struct {
	Object string   `json:"object"`
	Data   []Server `json:"data"`
}

type Relationships struct {
	Servers ServerList `json:"servers"`
}

type UserAttributes struct {
	ID            int64          `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Relationships *Relationships `json:"relationships,omitempty"`
}

type User struct {
	Object     string         `json:"object"`
	Attributes UserAttributes `json:"attributes"`
}

type UserList struct {
	Object string `json:"object"`
	Data   []User `json:"data"`
}
