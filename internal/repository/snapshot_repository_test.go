package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type snapshotRepositorySuite struct {
	suite.Suite

	repo port.SnapshotRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestSnapshotRepositorySuite(t *testing.T) {
	suite.Run(t, new(snapshotRepositorySuite))
}

// before all tests in the suite
func (suite *snapshotRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewPostgres(suite.pool)
}

// after all tests in the suite
func (suite *snapshotRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *snapshotRepositorySuite) TestLoadAbsent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	_, found, err := suite.repo.Load(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
}

func (suite *snapshotRepositorySuite) TestSaveLoad() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := uuid.NewString()

	cart := randomCart()

	err := suite.repo.Save(ctx, ownerID, cart)
	require.NoError(t, err)

	loaded, found, err := suite.repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, found)

	assertCartEqual(t, cart, loaded)
}

func (suite *snapshotRepositorySuite) TestSaveOverwrites() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := uuid.NewString()

	require.NoError(t, suite.repo.Save(ctx, ownerID, randomCart()))

	latest := randomCart()
	require.NoError(t, suite.repo.Save(ctx, ownerID, latest))

	loaded, found, err := suite.repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, found)

	assertCartEqual(t, latest, loaded)
}

func (suite *snapshotRepositorySuite) TestUnreadableSnapshotIsAbsent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := uuid.NewString()

	// valid JSON that does not decode into a cart
	_, err := suite.pool.Exec(ctx,
		`INSERT INTO cart_snapshots (owner_id, snapshot) VALUES ($1, '{"items": 42}')`, ownerID)
	require.NoError(t, err)

	_, found, err := suite.repo.Load(ctx, ownerID)
	require.NoError(t, err)
	assert.False(t, found)
}

func (suite *snapshotRepositorySuite) TestEmptyOwnerID() {
	t := suite.T()
	ctx := t.Context()

	_, _, err := suite.repo.Load(ctx, "")
	require.EqualError(t, err, "ownerID is empty")

	err = suite.repo.Save(ctx, "", domain.Cart{})
	require.EqualError(t, err, "ownerID is empty")
}

func (suite *snapshotRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_snapshots CASCADE")
	suite.NoError(err)
}

func randomCart() domain.Cart {
	cart := domain.Cart{}
	for i := 0; i < gofakeit.Number(1, 4); i++ {
		cart = domain.Apply(cart, domain.AddItem{Item: randomLineItem()})
	}

	return cart
}

func randomLineItem() domain.LineItem {
	productID := gofakeit.UUID()
	variantID := gofakeit.UUID()

	return domain.LineItem{
		ID:        domain.LineItemID(productID, variantID),
		ProductID: productID,
		VariantID: variantID,
		Title:     gofakeit.ProductName(),
		Image:     gofakeit.URL(),
		Price:     randomMoney(),
		Quantity:  gofakeit.Number(1, 5),
		Variant: domain.VariantInfo{
			Title: gofakeit.Word(),
			SelectedOptions: []domain.SelectedOption{
				{Name: "Edition", Value: gofakeit.Word()},
			},
		},
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func assertCartEqual(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	diff := cmp.Diff(expected, actual, currencyComparer)
	assert.Empty(t, diff)
}
