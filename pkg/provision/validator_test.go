package provision

import (
	"testing"

	"github.com/hostbit/hostbit/pkg/catalog"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/hostbit/hostbit/pkg/panel/requests"
	"github.com/hostbit/hostbit/pkg/panel/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanel struct {
	user      *responses.User
	userErr   error
	created   []requests.CreateServer
	deleted   []int64
	createErr error
	deleteErr error
}

func (f *fakePanel) GetUser(id int64) (*responses.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakePanel) FindUsersByEmail(email string) ([]responses.User, error) {
	return nil, nil
}

func (f *fakePanel) CreateUser(user requests.CreateUser) (*responses.User, error) {
	return nil, nil
}

func (f *fakePanel) CreateServer(server requests.CreateServer) (*responses.Server, error) {
	f.created = append(f.created, server)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &responses.Server{Object: "server", Attributes: responses.ServerAttributes{ID: 99, Name: server.Name}}, nil
}

func (f *fakePanel) DeleteServer(id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		DefaultPackage: "starter",
		Packages: map[string]models.Resources{
			"starter": {RAM: 10, Disk: 100, CPU: 300, Servers: 3},
			"premium": {RAM: 40, Disk: 400, CPU: 1200, Servers: 12},
		},
		Locations: map[string]catalog.Location{
			"eu":  {Name: "Europe"},
			"vip": {Name: "VIP", Packages: []string{"premium"}},
		},
		Eggs: map[string]catalog.Egg{
			"paper": {
				Minimum: &catalog.EggBounds{RAM: 1, Disk: 1, CPU: 1},
				Maximum: &catalog.EggBounds{RAM: 8, Disk: 90, CPU: 290},
				Info: catalog.EggInfo{
					Egg:         3,
					DockerImage: "ghcr.io/example/java:17",
					Startup:     "java -jar server.jar",
					Environment: map[string]interface{}{"SERVER_JARFILE": "server.jar"},
					Limits:      &catalog.EggInfoLimits{Swap: 128, IO: 750},
					FeatureLimits: &catalog.FeatureLimits{
						Databases:   2,
						Backups:     1,
						Allocations: 1,
					},
				},
			},
			"bare": {
				Info: catalog.EggInfo{Egg: 5, DockerImage: "ghcr.io/example/alpine", Startup: "./run"},
			},
		},
	}
}

type fixture struct {
	store     kvstore.Store
	svc       *entitlement.Service
	panel     *fakePanel
	validator *Validator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemoryStore()
	cat := testCatalog()
	svc := entitlement.NewService(store, cat)
	fake := &fakePanel{
		user: &responses.User{
			Attributes: responses.UserAttributes{
				ID:            7,
				Relationships: &responses.Relationships{},
			},
		},
	}
	require.NoError(t, store.Set(models.UserKey("100"), int64(7)))

	opts := Options{AllowCreate: true, AllowDelete: true}
	return &fixture{
		store:     store,
		svc:       svc,
		panel:     fake,
		validator: NewValidator(svc, cat, fake, opts),
	}
}

func (f *fixture) addServer(id int64, ram, disk, cpu int64) {
	servers := &f.panel.user.Attributes.Relationships.Servers
	servers.Data = append(servers.Data, responses.Server{
		Attributes: responses.ServerAttributes{
			ID:     id,
			User:   7,
			Limits: responses.Limits{Memory: ram, Disk: disk, CPU: cpu},
		},
	})
}

func validRequest() Request {
	return Request{
		Name:     "lobby",
		RAM:      float64(4),
		Disk:     float64(40),
		CPU:      float64(100),
		Egg:      "paper",
		Location: "eu",
	}
}

func rejectReason(t *testing.T, err error) string {
	t.Helper()
	var reject *Reject
	require.ErrorAs(t, err, &reject)
	return reject.Reason
}

func TestCreateServerDisabled(t *testing.T) {
	f := newFixture(t)
	f.validator.opts.AllowCreate = false

	_, err := f.validator.CreateServer("100", validRequest())
	assert.Equal(t, "server creation is disabled", rejectReason(t, err))
}

func TestCreateServerUnknownIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.validator.CreateServer("999", validRequest())
	assert.Equal(t, "invalid userid", rejectReason(t, err))
}

func TestCreateServerNonNumericResource(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.RAM = "lots"

	_, err := f.validator.CreateServer("100", req)
	assert.Equal(t, "ram, disk, or cpu is not a number", rejectReason(t, err))
}

func TestCreateServerNumericStringAccepted(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.RAM = "4"

	_, err := f.validator.CreateServer("100", req)
	require.NoError(t, err)
	require.Len(t, f.panel.created, 1)
	assert.Equal(t, int64(4), f.panel.created[0].Limits.Memory)
}

func TestCreateServerPanelUserMissing(t *testing.T) {
	f := newFixture(t)
	f.panel.userErr = &panel.APIError{StatusCode: 404}

	_, err := f.validator.CreateServer("100", validRequest())
	assert.Equal(t, "could not find user on panel", rejectReason(t, err))
}

func TestCreateServerMaxServersReached(t *testing.T) {
	f := newFixture(t)
	f.addServer(1, 1, 1, 1)
	f.addServer(2, 1, 1, 1)
	f.addServer(3, 1, 1, 1)

	_, err := f.validator.CreateServer("100", validRequest())
	assert.Equal(t, "user has reached the max servers limit", rejectReason(t, err))
}

func TestCreateServerInvalidLocation(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Location = "mars"

	_, err := f.validator.CreateServer("100", req)
	assert.Equal(t, "invalid server location", rejectReason(t, err))
}

func TestCreateServerRestrictedLocation(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Location = "vip"

	_, err := f.validator.CreateServer("100", req)
	assert.Equal(t, "location for premium only", rejectReason(t, err))

	// The premium package unlocks the location.
	require.NoError(t, f.svc.SetPlan("100", "premium"))
	req.RAM = float64(8)
	_, err = f.validator.CreateServer("100", req)
	require.NoError(t, err)
}

func TestCreateServerInvalidEgg(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Egg = "dragon"

	_, err := f.validator.CreateServer("100", req)
	assert.Equal(t, "invalid egg", rejectReason(t, err))
}

func TestCreateServerOverageReportsRemainder(t *testing.T) {
	f := newFixture(t)
	f.addServer(1, 8, 10, 10)

	req := validRequest()
	req.RAM = float64(3)

	// Ceiling 10, used 8: only 2 remain.
	_, err := f.validator.CreateServer("100", req)
	assert.Equal(t, "exceeded ram amount by 2", rejectReason(t, err))
}

func TestCreateServerEggBounds(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.RAM = float64(9)
	_, err := f.validator.CreateServer("100", req)
	assert.Equal(t, "exceeded maximum ram for egg", rejectReason(t, err))

	req = validRequest()
	req.CPU = float64(0)
	_, err = f.validator.CreateServer("100", req)
	assert.Equal(t, "too little cpu for egg", rejectReason(t, err))
}

func TestCreateServerPayload(t *testing.T) {
	f := newFixture(t)

	created, err := f.validator.CreateServer("100", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "lobby", created.Attributes.Name)

	require.Len(t, f.panel.created, 1)
	payload := f.panel.created[0]
	assert.Equal(t, int64(7), payload.User)
	assert.Equal(t, int64(3), payload.Egg)
	assert.Equal(t, "ghcr.io/example/java:17", payload.DockerImage)
	assert.Equal(t, requests.Limits{Memory: 4, Swap: 128, Disk: 40, IO: 750, CPU: 100}, payload.Limits)
	assert.Equal(t, requests.FeatureLimits{Databases: 2, Backups: 1, Allocations: 1}, payload.FeatureLimits)
	assert.Equal(t, []string{"eu"}, payload.Deploy.Locations)
	assert.NotNil(t, payload.Environment)
}

func TestCreateServerPayloadDefaults(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Egg = "bare"

	_, err := f.validator.CreateServer("100", req)
	require.NoError(t, err)

	payload := f.panel.created[0]
	assert.Equal(t, int64(0), payload.Limits.Swap)
	assert.Equal(t, int64(500), payload.Limits.IO)
	assert.Equal(t, requests.FeatureLimits{}, payload.FeatureLimits)
	assert.NotNil(t, payload.Environment)
}

func TestDeleteServerDisabled(t *testing.T) {
	f := newFixture(t)
	f.validator.opts.AllowDelete = false

	err := f.validator.DeleteServer("100", 1)
	assert.Equal(t, "server deletion is disabled", rejectReason(t, err))
}

func TestDeleteServerOwnership(t *testing.T) {
	f := newFixture(t)
	f.addServer(11, 1, 1, 1)

	err := f.validator.DeleteServer("100", 12)
	assert.Equal(t, "invalid serverid", rejectReason(t, err))
	assert.Empty(t, f.panel.deleted)

	require.NoError(t, f.validator.DeleteServer("100", 11))
	assert.Equal(t, []int64{11}, f.panel.deleted)
}
