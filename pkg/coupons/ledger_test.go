package coupons

import (
	"testing"

	"github.com/hostbit/hostbit/pkg/catalog"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithCode(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	code, err := ledger.Create("SUMMER2026", models.Coupon{Coins: 100})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER2026", code)

	coupon, found, err := ledger.Get("SUMMER2026")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(100), coupon.Coins)
}

func TestCreateGeneratesCode(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	code, err := ledger.Create("", models.Coupon{RAM: 512})
	require.NoError(t, err)
	assert.Len(t, code, 32)
	assert.Regexp(t, "^[a-f0-9]+$", code)
}

func TestCreateRejectsIllegalCharacters(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	_, err := ledger.Create("free money!", models.Coupon{Coins: 1})
	assert.Equal(t, ErrIllegalCharacters, err)
}

func TestCreateRejectsEmptyGrant(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	_, err := ledger.Create("EMPTY", models.Coupon{})
	assert.Equal(t, ErrEmptyCoupon, err)
}

func TestCreateRejectsNegativeFields(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	_, err := ledger.Create("BAD", models.Coupon{Coins: -1})
	var negErr *NegativeValueError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, "coins is less than 0", negErr.Error())

	_, err = ledger.Create("BAD", models.Coupon{Coins: 10, Disk: -5})
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, "disk is less than 0", negErr.Error())
}

func TestCreateRejectsOversizedFields(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	var rangeErr *RangeError
	_, err := ledger.Create("BIG", models.Coupon{Coins: models.MaxResourceValue + 1})
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "exceeded coins size", rangeErr.Error())

	_, err = ledger.Create("BIG", models.Coupon{RAM: models.MaxResourceValue + 1})
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "exceeded ram size", rangeErr.Error())

	// The ceiling itself is still a legal grant.
	_, err = ledger.Create("MAX", models.Coupon{RAM: models.MaxResourceValue})
	require.NoError(t, err)
}

func TestCreateTruncatesLongCodes(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	long := make([]byte, 250)
	for i := range long {
		long[i] = 'a'
	}

	code, err := ledger.Create(string(long), models.Coupon{Coins: 1})
	require.NoError(t, err)
	assert.Len(t, code, 200)
}

func TestGetMalformedCodeIsNotFound(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	_, found, err := ledger.Get("no spaces allowed")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestList(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	_, err := ledger.Create("ALPHA", models.Coupon{Coins: 1})
	require.NoError(t, err)
	_, err = ledger.Create("BETA", models.Coupon{RAM: 256})
	require.NoError(t, err)

	coupons, err := ledger.List()
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.Equal(t, int64(1), coupons["ALPHA"].Coins)
	assert.Equal(t, int64(256), coupons["BETA"].RAM)
}

func TestRevoke(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore())

	_, err := ledger.Create("GONE", models.Coupon{Coins: 1})
	require.NoError(t, err)

	require.NoError(t, ledger.Revoke("GONE"))

	_, found, err := ledger.Get("GONE")
	require.NoError(t, err)
	assert.False(t, found)

	coupons, err := ledger.List()
	require.NoError(t, err)
	assert.Empty(t, coupons)

	assert.Equal(t, ErrInvalidCode, ledger.Revoke("GONE"))
}

func redeemFixture(t *testing.T) (*Ledger, *entitlement.Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	cat := &catalog.Catalog{
		DefaultPackage: "starter",
		Packages:       map[string]models.Resources{"starter": {RAM: 1024, Servers: 1}},
	}
	svc := entitlement.NewService(store, cat)
	require.NoError(t, store.Set(models.UserKey("100"), int64(7)))
	return NewLedger(store), svc, store
}

func TestRedeemAppliesGrantAndRevokes(t *testing.T) {
	ledger, svc, _ := redeemFixture(t)

	_, err := ledger.Create("WELCOME", models.Coupon{Coins: 50, RAM: 512})
	require.NoError(t, err)

	coupon, err := ledger.Redeem(svc, "100", "WELCOME")
	require.NoError(t, err)
	assert.Equal(t, int64(50), coupon.Coins)

	coins, err := svc.Coins("100")
	require.NoError(t, err)
	assert.Equal(t, int64(50), coins)

	ent, err := svc.Resolve("100")
	require.NoError(t, err)
	assert.Equal(t, int64(512), ent.Extra.RAM)

	// Single use.
	_, err = ledger.Redeem(svc, "100", "WELCOME")
	assert.Equal(t, ErrInvalidCode, err)
}

func TestRedeemClampsCoinBalance(t *testing.T) {
	ledger, svc, _ := redeemFixture(t)
	require.NoError(t, svc.SetCoins("100", models.MaxResourceValue-10))

	_, err := ledger.Create("RICH", models.Coupon{Coins: 100})
	require.NoError(t, err)

	_, err = ledger.Redeem(svc, "100", "RICH")
	require.NoError(t, err)

	coins, err := svc.Coins("100")
	require.NoError(t, err)
	assert.Equal(t, models.MaxResourceValue, coins)
}

func TestRedeemSaturatesOversizedGrant(t *testing.T) {
	ledger, svc, _ := redeemFixture(t)

	one := int64(1)
	require.NoError(t, svc.UpdateExtra("100", &one, nil, nil, nil))

	_, err := ledger.Create("JACKPOT", models.Coupon{RAM: models.MaxResourceValue})
	require.NoError(t, err)

	_, err = ledger.Redeem(svc, "100", "JACKPOT")
	require.NoError(t, err)

	// The merge saturates at the ceiling; it must never wrap negative.
	ent, err := svc.Resolve("100")
	require.NoError(t, err)
	assert.Equal(t, models.MaxResourceValue, ent.Extra.RAM)
}

func TestRedeemUnknownAccount(t *testing.T) {
	ledger, svc, _ := redeemFixture(t)

	_, err := ledger.Create("ORPHAN", models.Coupon{Coins: 1})
	require.NoError(t, err)

	_, err = ledger.Redeem(svc, "999", "ORPHAN")
	assert.Equal(t, entitlement.ErrUnknownAccount, err)

	// An unredeemed coupon stays live.
	_, found, err := ledger.Get("ORPHAN")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRedeemUnknownCode(t *testing.T) {
	ledger, svc, _ := redeemFixture(t)

	_, err := ledger.Redeem(svc, "100", "NOPE")
	assert.Equal(t, ErrInvalidCode, err)
}
