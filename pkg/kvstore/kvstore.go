package kvstore

// Store is the persistence adapter the entitlement engine runs against: a
// flat string-keyed namespace of JSON documents plus named sets with atomic
// membership operations.
type Store interface {
	// Get unmarshals the record at key into out. It reports whether the
	// record exists; absence is not an error.
	Get(key string, out interface{}) (bool, error)
	Set(key string, value interface{}) error
	Delete(key string) error

	SetAdd(set string, member string) error
	SetRemove(set string, member string) error
	SetContains(set string, member string) (bool, error)
	SetMembers(set string) ([]string, error)
}
