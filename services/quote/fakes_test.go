package quote

import (
	"context"
	"errors"
	"time"

	"glowbook/models"
)

type fakeCatalog struct {
	masters []models.ServiceMaster
	extras  []models.ServiceExtra
	err     error
}

func (f *fakeCatalog) FindServiceMasters(_ context.Context, ids []string) ([]models.ServiceMaster, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.ServiceMaster
	// Reverse order so callers cannot rely on positional matching.
	for i := len(f.masters) - 1; i >= 0; i-- {
		if want[f.masters[i].ID] {
			out = append(out, f.masters[i])
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindExtras(_ context.Context, ids []string) ([]models.ServiceExtra, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.ServiceExtra
	for _, extra := range f.extras {
		if want[extra.ID] {
			out = append(out, extra)
		}
	}
	return out, nil
}

type fakeOracle struct {
	days  map[string]models.DayAvailability
	err   error
	calls int
}

func (f *fakeOracle) Times(_ context.Context, _ string, _, _ time.Time) (map[string]models.DayAvailability, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.days, nil
}

type fakeMemberships struct {
	memberships []models.MemberShip
	err         error
}

func (f *fakeMemberships) FindActive(_ context.Context, userID, membershipID, _ string, _ time.Time) ([]models.MemberShip, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MemberShip
	for _, m := range f.memberships {
		if m.UserID != userID {
			continue
		}
		if membershipID != "" && m.ID != membershipID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeGiftCards struct {
	cards map[string]models.GiftCart
}

func (f *fakeGiftCards) FindActive(_ context.Context, id, _ string, _ time.Time) (*models.GiftCart, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, nil
	}
	return &card, nil
}

type fakeCoupons struct {
	discount float64
	gotCode  string
	gotAmt   float64
	gotRate  float64
	err      error
}

func (f *fakeCoupons) Price(_ context.Context, code string, amount, rate float64) (float64, error) {
	f.gotCode, f.gotAmt, f.gotRate = code, amount, rate
	return f.discount, f.err
}

type fakeCurrencies struct {
	rates map[string]float64
	err   error
}

func (f *fakeCurrencies) FindByCode(_ context.Context, code string) (*models.Currency, error) {
	if f.err != nil {
		return nil, f.err
	}
	rate, ok := f.rates[code]
	if !ok {
		return nil, nil
	}
	return &models.Currency{Code: code, Rate: rate}, nil
}

type fixedFee float64

func (f fixedFee) ServiceFee(context.Context) (float64, error) { return float64(f), nil }

var errTransport = errors.New("connection refused")

func at(layout string) time.Time {
	t, err := time.ParseInLocation(models.QuoteDateLayout, layout, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
