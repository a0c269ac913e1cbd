package quote

import (
	"context"
	"testing"
	"time"

	"glowbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type engineFixture struct {
	catalog     *fakeCatalog
	oracle      *fakeOracle
	memberships *fakeMemberships
	giftCards   *fakeGiftCards
	coupons     *fakeCoupons
	currencies  *fakeCurrencies
	now         time.Time
}

func newFixture() *engineFixture {
	return &engineFixture{
		catalog: &fakeCatalog{masters: []models.ServiceMaster{
			{ID: "cut", MasterID: "m-1", ServiceID: "s-cut", Interval: 60, Price: 100, TotalPrice: 100},
			{ID: "wash", MasterID: "m-1", ServiceID: "s-wash", Interval: 30, Pause: 10, Price: 100, TotalPrice: 100},
			{ID: "dye", MasterID: "m-1", ServiceID: "s-dye", Interval: 30, Pause: 10, Price: 40, TotalPrice: 40},
		}},
		oracle:      &fakeOracle{},
		memberships: &fakeMemberships{},
		giftCards:   &fakeGiftCards{cards: map[string]models.GiftCart{}},
		coupons:     &fakeCoupons{},
		currencies:  &fakeCurrencies{rates: map[string]float64{"USD": 1, "EUR": 2}},
		now:         at("2023-12-31 12:00"),
	}
}

func (f *engineFixture) engine(fee float64) *DefaultQuoteEngine {
	return &DefaultQuoteEngine{
		Catalog:         f.catalog,
		Availability:    f.oracle,
		Memberships:     f.memberships,
		GiftCards:       f.giftCards,
		Coupons:         f.coupons,
		Currencies:      f.currencies,
		Fees:            fixedFee(fee),
		DefaultCurrency: "USD",
		Location:        time.UTC,
		Now:             func() time.Time { return f.now },
		Logger:          zap.NewNop(),
	}
}

func request(start string, ids ...string) models.BookingQuoteRequest {
	req := models.BookingQuoteRequest{StartDate: start}
	for _, id := range ids {
		req.Items = append(req.Items, models.ItemRequest{ServiceMasterID: id})
	}
	return req
}

func TestCalculate_SingleItem(t *testing.T) {
	f := newFixture()
	res := f.engine(7).Calculate(context.Background(), request("2024-01-01 09:00", "cut"))

	require.True(t, res.Status, res.Message)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 107.0, res.Items[0].TotalPrice)
	assert.Equal(t, 107.0, res.TotalPrice)
	assert.Equal(t, 1.0, res.Rate)
	assert.Equal(t, 100.0, res.Price)
	assert.Equal(t, 7.0, res.ServiceFee)
	assert.Equal(t, "2024-01-01 09:00", res.StartDate)
	assert.Equal(t, "2024-01-01 10:00", res.EndDate)
}

func TestCalculate_ChainsSlots(t *testing.T) {
	f := newFixture()
	res := f.engine(0).Calculate(context.Background(), request("2024-01-01T09:00", "wash", "dye"))

	require.True(t, res.Status, res.Message)
	require.Len(t, res.Items, 2)
	assert.Equal(t, at("2024-01-01 09:00"), res.Items[0].StartDate)
	assert.Equal(t, at("2024-01-01 09:40"), res.Items[0].EndDate)
	assert.Equal(t, at("2024-01-01 09:40"), res.Items[1].StartDate)
	assert.Equal(t, at("2024-01-01 10:20"), res.Items[1].EndDate)
	assert.Equal(t, "2024-01-01 10:20", res.EndDate)
}

func TestCalculate_FollowsRequestOrderNotCatalogOrder(t *testing.T) {
	f := newFixture()
	// The fake catalog answers in reverse order.
	res := f.engine(0).Calculate(context.Background(), request("2024-01-01 09:00", "cut", "wash", "dye"))

	require.True(t, res.Status, res.Message)
	got := []string{res.Items[0].ServiceMasterID, res.Items[1].ServiceMasterID, res.Items[2].ServiceMasterID}
	assert.Equal(t, []string{"cut", "wash", "dye"}, got)
	assert.Equal(t, at("2024-01-01 10:00"), res.Items[1].StartDate)
	assert.Equal(t, at("2024-01-01 10:40"), res.Items[2].StartDate)
}

func TestCalculate_RepeatedService(t *testing.T) {
	f := newFixture()
	res := f.engine(0).Calculate(context.Background(), request("2024-01-01 09:00", "dye", "dye"))

	require.True(t, res.Status, res.Message)
	require.Len(t, res.Items, 2)
	assert.Equal(t, res.Items[0].EndDate, res.Items[1].StartDate)
	assert.Equal(t, 80.0, res.TotalPrice)
}

func TestCalculate_GiftCardWaterfall(t *testing.T) {
	f := newFixture()
	f.giftCards.cards["g-1"] = models.GiftCart{ID: "g-1", Price: 150, ExpiredAt: f.now.Add(24 * time.Hour)}
	req := request("2024-01-01 09:00", "cut", "wash")
	req.GiftCartID = "g-1"

	res := f.engine(0).Calculate(context.Background(), req)

	require.True(t, res.Status, res.Message)
	for _, item := range res.Items {
		assert.Equal(t, 75.0, item.GiftCartPrice)
		assert.Equal(t, 25.0, item.TotalPrice)
	}
	assert.Equal(t, 50.0, res.TotalPrice)
	assert.Equal(t, 150.0, res.GiftCartPrice)
	assert.Equal(t, "g-1", res.GiftCartID)
}

func TestCalculate_GiftCardConvertedOnce(t *testing.T) {
	f := newFixture()
	f.giftCards.cards["g-1"] = models.GiftCart{ID: "g-1", Price: 50}
	req := request("2024-01-01 09:00", "cut")
	req.GiftCartID = "g-1"
	req.Currency = "EUR"

	res := f.engine(0).Calculate(context.Background(), req)

	require.True(t, res.Status, res.Message)
	assert.Equal(t, 2.0, res.Rate)
	assert.Equal(t, 100.0, res.Items[0].GiftCartPrice)
	assert.Equal(t, 100.0, res.Items[0].TotalPrice)
	assert.Equal(t, 100.0, res.TotalPrice)
}

func TestCalculate_InvalidGiftCard(t *testing.T) {
	f := newFixture()
	f.giftCards.cards["old"] = models.GiftCart{ID: "old", Price: 50, ExpiredAt: f.now.Add(-time.Hour)}

	for _, id := range []string{"missing", "old"} {
		req := request("2024-01-01 09:00", "cut")
		req.GiftCartID = id
		res := f.engine(0).Calculate(context.Background(), req)

		assert.False(t, res.Status, id)
		assert.Contains(t, res.Message, ErrGiftCardInvalid.Error(), id)
		assert.Empty(t, res.Items, id)
	}
}

func TestCalculate_MasterClosedDoesNotStopChain(t *testing.T) {
	f := newFixture()
	f.oracle.days = map[string]models.DayAvailability{"2024-01-01": {Closed: true}}

	res := f.engine(0).Calculate(context.Background(), request("2024-01-01 23:00", "cut", "wash"))

	assert.False(t, res.Status)
	require.Len(t, res.Items, 2)
	assert.Equal(t, []models.ErrorCode{models.ErrMasterClosed}, res.Items[0].Errors)
	// Second item starts on 2024-01-02 and is priced and validated normally.
	assert.Empty(t, res.Items[1].Errors)
	assert.Equal(t, at("2024-01-02 00:00"), res.Items[1].StartDate)
	assert.Equal(t, 100.0, res.Items[1].TotalPrice)
	assert.Equal(t, 200.0, res.TotalPrice)
	assert.Equal(t, 2, f.oracle.calls)
}

func TestCalculate_AlreadyBooked(t *testing.T) {
	f := newFixture()
	f.oracle.days = map[string]models.DayAvailability{"2024-01-01": {DisabledTimes: []int{8 * 60, 12 * 60}}}

	res := f.engine(0).Calculate(context.Background(), request("2024-01-01 09:00", "cut"))

	assert.False(t, res.Status)
	assert.Equal(t, []models.ErrorCode{models.ErrAlreadyBooked}, res.Items[0].Errors)
}

func TestCalculate_MembershipPrecedence(t *testing.T) {
	f := newFixture()
	f.catalog.masters[0].Prices = []models.PriceTier{{ID: "peak", Price: 300, Smart: []models.SmartPriceRule{
		{From: "00:00", To: "23:59", Value: 50, ValueType: models.SmartValuePercent, Type: models.SmartTypeIncrease},
	}}}
	f.catalog.extras = []models.ServiceExtra{{ID: "x-1", ServiceMasterID: "cut", Price: 30}}
	f.memberships.memberships = []models.MemberShip{
		{ID: "ms-1", UserID: "u-1", Sessions: models.SessionsUnlimited, ServiceIDs: []string{"s-cut"}},
	}
	f.giftCards.cards["g-1"] = models.GiftCart{ID: "g-1", Price: 60}
	f.coupons.discount = 10

	req := models.BookingQuoteRequest{
		StartDate:  "2024-01-01 09:00",
		UserID:     "u-1",
		GiftCartID: "g-1",
		Coupon:     "SAVE10",
		Items: []models.ItemRequest{
			{ServiceMasterID: "cut", PriceTierID: "peak", ExtraIDs: []string{"x-1"}},
			{ServiceMasterID: "dye"},
		},
	}
	res := f.engine(5).Calculate(context.Background(), req)

	require.True(t, res.Status, res.Message)
	covered := res.Items[0]
	assert.Equal(t, "ms-1", covered.UserMemberShipID)
	assert.Zero(t, covered.Price)
	assert.Zero(t, covered.Discount)
	assert.Zero(t, covered.ServiceFee)
	assert.Zero(t, covered.CommissionFee)
	assert.Zero(t, covered.ExtraPrice)
	assert.Zero(t, covered.TotalPrice)
	assert.Zero(t, covered.GiftCartPrice)

	// dye: 40 + 5 fee, fully covered by the gift card; coupon is skipped at zero.
	assert.Equal(t, 45.0, res.Items[1].GiftCartPrice)
	assert.Zero(t, res.Items[1].TotalPrice)
	assert.Zero(t, res.CouponPrice)
	assert.Zero(t, res.TotalPrice)
}

func TestCalculate_CouponOnAggregate(t *testing.T) {
	f := newFixture()
	f.coupons.discount = 30
	req := request("2024-01-01 09:00", "cut", "dye")
	req.Coupon = "SPRING"

	res := f.engine(0).Calculate(context.Background(), req)

	require.True(t, res.Status, res.Message)
	assert.Equal(t, 140.0, f.coupons.gotAmt)
	assert.Equal(t, 30.0, res.CouponPrice)
	assert.Equal(t, 110.0, res.TotalPrice)
	assert.Equal(t, 100.0, res.Items[0].TotalPrice)
	assert.Equal(t, 40.0, res.Items[1].TotalPrice)
}

func TestCalculate_ExtrasOnlyFromOwnServiceMaster(t *testing.T) {
	f := newFixture()
	f.catalog.extras = []models.ServiceExtra{
		{ID: "x-cut", ServiceMasterID: "cut", Price: 15},
		{ID: "x-dye", ServiceMasterID: "dye", Price: 99},
	}
	req := models.BookingQuoteRequest{
		StartDate: "2024-01-01 09:00",
		Items:     []models.ItemRequest{{ServiceMasterID: "cut", ExtraIDs: []string{"x-cut", "x-dye", "x-cut", "ghost"}}},
	}

	res := f.engine(0).Calculate(context.Background(), req)

	require.True(t, res.Status, res.Message)
	require.Len(t, res.Items[0].Extras, 1)
	assert.Equal(t, 15.0, res.Items[0].ExtraPrice)
	assert.Equal(t, 115.0, res.TotalPrice)
}

func TestCalculate_ScheduleErrors(t *testing.T) {
	f := newFixture()
	cases := map[string]models.BookingQuoteRequest{
		"past":      request("2023-12-31 11:59", "cut"),
		"malformed": request("tomorrow-ish", "cut"),
		"end before start": func() models.BookingQuoteRequest {
			r := request("2024-01-01 09:00", "cut")
			r.EndDate = "2024-01-01 08:00"
			return r
		}(),
	}
	for name, req := range cases {
		res := f.engine(0).Calculate(context.Background(), req)
		assert.False(t, res.Status, name)
		assert.Contains(t, res.Message, "schedule error", name)
		assert.Empty(t, res.Items, name)
	}
}

func TestCalculate_CollaboratorFailures(t *testing.T) {
	f := newFixture()
	res := f.engine(0).Calculate(context.Background(), request("2024-01-01 09:00", "ghost"))
	assert.False(t, res.Status)
	assert.Contains(t, res.Message, ErrCatalogMiss.Error())

	f.catalog.err = errTransport
	res = f.engine(0).Calculate(context.Background(), request("2024-01-01 09:00", "cut"))
	assert.False(t, res.Status)
	assert.Contains(t, res.Message, errTransport.Error())
	assert.Empty(t, res.Items)

	f = newFixture()
	f.currencies.err = errTransport
	res = f.engine(0).Calculate(context.Background(), request("2024-01-01 09:00", "cut"))
	assert.False(t, res.Status)

	f = newFixture()
	res = f.engine(0).Calculate(context.Background(), models.BookingQuoteRequest{StartDate: "2024-01-01 09:00"})
	assert.False(t, res.Status)
	assert.Contains(t, res.Message, ErrNoItems.Error())
}

type panickingCatalog struct{ *fakeCatalog }

func (panickingCatalog) FindServiceMasters(context.Context, []string) ([]models.ServiceMaster, error) {
	panic("driver exploded")
}

func TestCalculate_RecoversFromPanics(t *testing.T) {
	f := newFixture()
	eng := f.engine(0)
	eng.Catalog = panickingCatalog{}

	res := eng.Calculate(context.Background(), request("2024-01-01 09:00", "cut"))

	assert.False(t, res.Status)
	assert.Contains(t, res.Message, "driver exploded")
}

func TestCalculate_TotalsNeverNegative(t *testing.T) {
	f := newFixture()
	f.catalog.masters[1].Prices = []models.PriceTier{{ID: "promo", Price: 10, Smart: []models.SmartPriceRule{
		{From: "00:00", To: "24:00", Value: 1000, ValueType: models.SmartValueAbsolute, Type: models.SmartTypeDecrease},
	}}}
	f.giftCards.cards["g-1"] = models.GiftCart{ID: "g-1", Price: 1000}
	f.coupons.discount = 1e6
	req := models.BookingQuoteRequest{
		StartDate:  "2024-01-01 09:00",
		GiftCartID: "g-1",
		Coupon:     "ALL",
		Items:      []models.ItemRequest{{ServiceMasterID: "wash", PriceTierID: "promo"}, {ServiceMasterID: "cut"}},
	}

	res := f.engine(0).Calculate(context.Background(), req)

	require.True(t, res.Status, res.Message)
	assert.GreaterOrEqual(t, res.TotalPrice, 0.0)
	for _, item := range res.Items {
		assert.GreaterOrEqual(t, item.TotalPrice, 0.0)
	}
	assert.Equal(t, 100.0, res.GiftCartPrice)
}
