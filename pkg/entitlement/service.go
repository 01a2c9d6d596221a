package entitlement

import (
	"strconv"

	"github.com/hostbit/hostbit/pkg/catalog"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/sirupsen/logrus"
)

func formatPanelID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// saturatingAdd sums two non-negative values without ever exceeding the
// ceiling; a plain sum of two large fields could wrap negative.
func saturatingAdd(a, b int64) int64 {
	if b > models.MaxResourceValue-a {
		return models.MaxResourceValue
	}
	return a + b
}

// Service owns the per-account entitlement records: the identity to hosting
// account link, the assigned package name, the manual extra grant and the
// coin balance. Records are plain read-modify-write documents with
// last-writer-wins semantics; this surface is administrative and
// low-concurrency, and no cross-record transaction is attempted.
type Service struct {
	store   kvstore.Store
	catalog *catalog.Catalog
}

func NewService(store kvstore.Store, cat *catalog.Catalog) *Service {
	return &Service{store: store, catalog: cat}
}

// PanelID returns the hosting-account id linked to an external identity.
func (s *Service) PanelID(id string) (int64, bool, error) {
	var panelID int64
	found, err := s.store.Get(models.UserKey(id), &panelID)
	return panelID, found, err
}

func (s *Service) AccountExists(id string) (bool, error) {
	_, found, err := s.PanelID(id)
	return found, err
}

// Resolve computes the effective entitlement for an account: the assigned
// package template (default when none is assigned, all-zero when the assigned
// name no longer resolves) plus the extra grant (all-zero when absent).
// Absence of data degrades to zero; Resolve never fails on missing records.
func (s *Service) Resolve(id string) (models.Entitlement, error) {
	var assigned string
	_, err := s.store.Get(models.PackageKey(id), &assigned)
	if err != nil {
		return models.Entitlement{}, err
	}

	name, template := s.catalog.Package(assigned)

	var extra models.Resources
	_, err = s.store.Get(models.ExtraKey(id), &extra)
	if err != nil {
		return models.Entitlement{}, err
	}

	return models.Entitlement{PackageName: name, Package: template, Extra: extra}, nil
}

// SetPlan assigns a configured package to the account. An empty name clears
// the assignment so the account falls back to the default package.
func (s *Service) SetPlan(id string, name string) error {
	exists, err := s.AccountExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownAccount
	}

	if name == "" {
		return s.store.Delete(models.PackageKey(id))
	}

	if _, ok := s.catalog.Packages[name]; !ok {
		return ErrInvalidPackage
	}

	return s.store.Set(models.PackageKey(id), name)
}

// UpdateExtra overwrites the provided extra fields; nil fields keep their
// current value. The record is deleted, not zeroed, once every field is zero.
func (s *Service) UpdateExtra(id string, ram, disk, cpu, servers *int64) error {
	exists, err := s.AccountExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownAccount
	}

	var extra models.Resources
	if _, err := s.store.Get(models.ExtraKey(id), &extra); err != nil {
		return err
	}

	if ram != nil {
		if *ram < 0 || *ram > models.MaxResourceValue {
			return &RangeError{Field: "ram"}
		}
		extra.RAM = *ram
	}
	if disk != nil {
		if *disk < 0 || *disk > models.MaxResourceValue {
			return &RangeError{Field: "disk"}
		}
		extra.Disk = *disk
	}
	if cpu != nil {
		if *cpu < 0 || *cpu > models.MaxResourceValue {
			return &RangeError{Field: "cpu"}
		}
		extra.CPU = *cpu
	}
	if servers != nil {
		if *servers < 0 || *servers > models.MaxResourceValue {
			return &RangeError{Field: "server"}
		}
		extra.Servers = *servers
	}

	if extra.IsZero() {
		return s.store.Delete(models.ExtraKey(id))
	}

	return s.store.Set(models.ExtraKey(id), extra)
}

// AddExtra merges a grant into the account's extra record, saturating each
// field at MaxResourceValue. Used by coupon redemption.
func (s *Service) AddExtra(id string, grant models.Resources) error {
	var extra models.Resources
	if _, err := s.store.Get(models.ExtraKey(id), &extra); err != nil {
		return err
	}

	extra.RAM = saturatingAdd(extra.RAM, grant.RAM)
	extra.Disk = saturatingAdd(extra.Disk, grant.Disk)
	extra.CPU = saturatingAdd(extra.CPU, grant.CPU)
	extra.Servers = saturatingAdd(extra.Servers, grant.Servers)

	if extra.IsZero() {
		return s.store.Delete(models.ExtraKey(id))
	}

	return s.store.Set(models.ExtraKey(id), extra)
}

// Coins returns the account's balance; a missing record is a zero balance.
func (s *Service) Coins(id string) (int64, error) {
	var coins int64
	_, err := s.store.Get(models.CoinsKey(id), &coins)
	return coins, err
}

// SetCoins stores an absolute balance. Zero deletes the record rather than
// persisting it.
func (s *Service) SetCoins(id string, coins int64) error {
	exists, err := s.AccountExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownAccount
	}

	if coins < 0 || coins > models.MaxResourceValue {
		return ErrCoinsOutOfRange
	}

	if coins == 0 {
		return s.store.Delete(models.CoinsKey(id))
	}

	return s.store.Set(models.CoinsKey(id), coins)
}

// AddCoins applies a delta to the balance. A result outside the allowed
// range is rejected, never persisted.
func (s *Service) AddCoins(id string, delta int64) (int64, error) {
	exists, err := s.AccountExists(id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrUnknownAccount
	}

	current, err := s.Coins(id)
	if err != nil {
		return 0, err
	}

	coins := current + delta
	if coins < 0 || coins > models.MaxResourceValue {
		return 0, ErrCoinsOutOfRange
	}

	if coins == 0 {
		return 0, s.store.Delete(models.CoinsKey(id))
	}

	return coins, s.store.Set(models.CoinsKey(id), coins)
}

// RemoveAccount tears down every record associated with an identity: its
// origin claim, the roster entry for its hosting account, the link itself
// and the coins, extra and package records. Best effort, step by step.
func (s *Service) RemoveAccount(id string) error {
	panelID, found, err := s.PanelID(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrUnknownAccount
	}

	var origin string
	originFound, err := s.store.Get(models.IPKey(id), &origin)
	if err != nil {
		return err
	}
	if originFound {
		if err := s.store.SetRemove(models.IPSet, origin); err != nil {
			return err
		}
		if err := s.store.Delete(models.IPKey(id)); err != nil {
			return err
		}
	}

	if err := s.store.SetRemove(models.UsersSet, formatPanelID(panelID)); err != nil {
		return err
	}
	if err := s.store.Delete(models.UserKey(id)); err != nil {
		return err
	}

	for _, key := range []string{models.CoinsKey(id), models.ExtraKey(id), models.PackageKey(id)} {
		if err := s.store.Delete(key); err != nil {
			logrus.Error(err)
			return err
		}
	}

	return nil
}
