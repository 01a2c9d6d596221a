package configkey

const (
	HostbitAPIURL  = "hostbit.api.url"
	HostbitAPICode = "hostbit.api.code"
)
