package identity

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/hostbit/hostbit/pkg/panel/requests"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Options struct {
	DuplicateCheck   bool
	BlockedOrigins   []string
	AllowNewUsers    bool
	PasswordOnSignup bool
	PasswordLength   int
}

func OptionsFromConfig() Options {
	return Options{
		DuplicateCheck:   viper.GetBool(configkey.IPDuplicateCheck),
		BlockedOrigins:   viper.GetStringSlice(configkey.IPBlocked),
		AllowNewUsers:    viper.GetBool(configkey.AllowNewUsers),
		PasswordOnSignup: viper.GetBool(configkey.PasswordOnSignup),
		PasswordLength:   viper.GetInt(configkey.PasswordLength),
	}
}

// Linker maps an external identity to exactly one hosting account. It owns
// the duplicate-origin policy and lazy account provisioning; an identity is
// linked at most once, re-authentication only re-enters the origin check.
type Linker struct {
	store kvstore.Store
	panel panel.Client
	opts  Options
}

func NewLinker(store kvstore.Store, panelClient panel.Client, opts Options) *Linker {
	return &Linker{store: store, panel: panelClient, opts: opts}
}

// CheckOrigin enforces the duplicate-account policy for one authentication.
// The blocklist short-circuits everything; afterwards an origin may belong to
// at most one identity, and an identity changing origins releases its old
// claim before taking the new one.
func (l *Linker) CheckOrigin(id string, rawOrigin string) error {
	origin := NormalizeOrigin(rawOrigin)

	for _, blocked := range l.opts.BlockedOrigins {
		if blocked == origin {
			return &LinkError{Code: CodeIPBlocked}
		}
	}

	if !l.opts.DuplicateCheck {
		return nil
	}

	var recorded string
	found, err := l.store.Get(models.IPKey(id), &recorded)
	if err != nil {
		return err
	}

	if found {
		if recorded == origin {
			return nil
		}

		if err := l.store.SetRemove(models.IPSet, recorded); err != nil {
			return err
		}
	}

	claimed, err := l.store.SetContains(models.IPSet, origin)
	if err != nil {
		return err
	}
	if claimed {
		return &LinkError{Code: CodeAntiAlt}
	}

	if err := l.store.SetAdd(models.IPSet, origin); err != nil {
		return err
	}

	return l.store.Set(models.IPKey(id), origin)
}

// Provision returns the hosting-account id linked to the identity, creating
// a panel account when none is linked yet. On an upstream creation conflict
// it reconciles by email: exactly one match that is not already claimed by
// another identity gets linked, anything else is a terminal failure. The
// returned password is non-empty only for a freshly created account.
func (l *Linker) Provision(profile *Profile) (int64, string, error) {
	panelID, found, err := l.getLink(profile.ID)
	if err != nil {
		return 0, "", err
	}
	if found {
		return panelID, "", nil
	}

	if !l.opts.AllowNewUsers {
		return 0, "", &LinkError{Code: CodeDisabled}
	}

	var password string
	if l.opts.PasswordOnSignup {
		password = makePassword(l.opts.PasswordLength)
	}

	created, err := l.panel.CreateUser(requests.CreateUser{
		Username:  profile.ID,
		Email:     profile.Email,
		FirstName: profile.Username,
		LastName:  "#" + profile.Discriminator,
		Password:  password,
	})
	if err == nil {
		if err := l.setLink(profile.ID, created.Attributes.ID); err != nil {
			return 0, "", err
		}
		return created.Attributes.ID, password, nil
	}

	if _, ok := err.(*panel.APIError); !ok {
		return 0, "", err
	}

	// The panel already has an account for this email; reconcile by lookup.
	logrus.Infof("panel account creation for %s conflicted, reconciling by email", profile.ID)
	matches, err := l.panel.FindUsersByEmail(profile.Email)
	if err != nil {
		return 0, "", &LinkError{Code: CodeUnknown}
	}

	var exact []int64
	for _, match := range matches {
		if match.Attributes.Email == profile.Email {
			exact = append(exact, match.Attributes.ID)
		}
	}
	if len(exact) != 1 {
		return 0, "", &LinkError{Code: CodeUnknown}
	}

	claimed, err := l.store.SetContains(models.UsersSet, formatPanelID(exact[0]))
	if err != nil {
		return 0, "", err
	}
	if claimed {
		return 0, "", &LinkError{Code: CodeAnotherAccount}
	}

	if err := l.setLink(profile.ID, exact[0]); err != nil {
		return 0, "", err
	}

	return exact[0], "", nil
}

// LinkOrCreate runs one full authentication: profile verification, the
// duplicate-origin policy, then provisioning.
func (l *Linker) LinkOrCreate(profile *Profile, rawOrigin string) (int64, string, error) {
	if !profile.Verified {
		return 0, "", &LinkError{Code: CodeUnverified}
	}

	if err := l.CheckOrigin(profile.ID, rawOrigin); err != nil {
		return 0, "", err
	}

	return l.Provision(profile)
}

func (l *Linker) getLink(id string) (int64, bool, error) {
	var panelID int64
	found, err := l.store.Get(models.UserKey(id), &panelID)
	return panelID, found, err
}

func (l *Linker) setLink(id string, panelID int64) error {
	if err := l.store.SetAdd(models.UsersSet, formatPanelID(panelID)); err != nil {
		return err
	}

	return l.store.Set(models.UserKey(id), panelID)
}

func formatPanelID(id int64) string {
	return strconv.FormatInt(id, 10)
}

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func makePassword(length int) string {
	if length <= 0 {
		length = 16
	}

	password := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		password[i] = passwordCharset[n.Int64()]
	}

	return string(password)
}
