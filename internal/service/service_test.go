package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/gps-gateway/internal/models"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) GetCardList(ctx context.Context, cpr string) ([]models.Card, error) {
	args := m.Called(ctx, cpr)
	cards, _ := args.Get(0).([]models.Card)
	return cards, args.Error(1)
}

func (m *mockBackend) GetStatementTransactions(ctx context.Context, cpr, cardNumber, statementFlag string) ([]models.StatementTransaction, error) {
	args := m.Called(ctx, cpr, cardNumber, statementFlag)
	txs, _ := args.Get(0).([]models.StatementTransaction)
	return txs, args.Error(1)
}

func newTestService(backend Backend) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(backend, log)
}

func TestListCards(t *testing.T) {
	backend := &mockBackend{}
	cards := []models.Card{{"CardNumber": "4000001234567899"}}
	backend.On("GetCardList", mock.Anything, "12345").Return(cards, nil).Once()

	got, err := newTestService(backend).ListCards(context.Background(), CardListQuery{CPR: "12345"})
	require.NoError(t, err)
	require.Equal(t, cards, got)
	backend.AssertExpectations(t)
}

func TestListCards_MissingCPR(t *testing.T) {
	backend := &mockBackend{}

	_, err := newTestService(backend).ListCards(context.Background(), CardListQuery{CPR: ""})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "cpr", verr.Field)
	require.Equal(t, "CPR parameter is required", err.Error())
	backend.AssertNotCalled(t, "GetCardList", mock.Anything, mock.Anything)
	backend.AssertNumberOfCalls(t, "GetCardList", 0)
}

func TestListStatementTransactions_DefaultFlag(t *testing.T) {
	backend := &mockBackend{}
	backend.On("GetStatementTransactions", mock.Anything, "12345", "4000001234567899", models.DefaultStatementFlag).
		Return([]models.StatementTransaction{}, nil).Once()

	got, err := newTestService(backend).ListStatementTransactions(context.Background(), StatementQuery{
		CPR:        "12345",
		CardNumber: "4000001234567899",
	})
	require.NoError(t, err)
	require.Empty(t, got)
	backend.AssertExpectations(t)
}

func TestListStatementTransactions_FlagPassthrough(t *testing.T) {
	backend := &mockBackend{}
	backend.On("GetStatementTransactions", mock.Anything, "12345", "4000001234567899", "anything-else").
		Return([]models.StatementTransaction{}, nil).Once()

	_, err := newTestService(backend).ListStatementTransactions(context.Background(), StatementQuery{
		CPR:           "12345",
		CardNumber:    "4000001234567899",
		StatementFlag: "anything-else",
	})
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestListStatementTransactions_MissingParams(t *testing.T) {
	cases := []struct {
		name  string
		query StatementQuery
		field string
	}{
		{"no cpr", StatementQuery{CardNumber: "4000001234567899"}, "cpr"},
		{"no card number", StatementQuery{CPR: "12345"}, "cardNumber"},
		{"nothing", StatementQuery{StatementFlag: "C"}, "cpr"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			backend := &mockBackend{}

			_, err := newTestService(backend).ListStatementTransactions(context.Background(), c.query)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, c.field, verr.Field)
			backend.AssertNumberOfCalls(t, "GetStatementTransactions", 0)
		})
	}
}

func TestListCards_BackendErrorPassesThrough(t *testing.T) {
	backend := &mockBackend{}
	boom := errors.New("boom")
	backend.On("GetCardList", mock.Anything, "12345").Return(nil, boom).Once()

	_, err := newTestService(backend).ListCards(context.Background(), CardListQuery{CPR: "12345"})
	require.ErrorIs(t, err, boom)
}
