package identity

// Terminal linking outcomes. The codes travel to the browser as the err
// query parameter on the failure redirect.
const (
	CodeMissingCode    = "MISSINGCODE"
	CodeInvalidCode    = "INVALIDCODE"
	CodeMissingScopes  = "MISSINGSCOPES"
	CodeUnverified     = "UNVERIFIED"
	CodeIPBlocked      = "IPBLOCKED"
	CodeAntiAlt        = "ANTIALT"
	CodeAnotherAccount = "ANOTHERACCOUNT"
	CodeDisabled       = "DISABLED"
	CodeCannotGetInfo  = "CANNOTGETINFO"
	CodeUnknown        = "UNKNOWN"
)

// LinkError is a terminal linking failure with a machine-readable code.
type LinkError struct {
	Code   string
	Scopes []string
}

func (e *LinkError) Error() string {
	return "link failed: " + e.Code
}
