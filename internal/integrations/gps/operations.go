package gps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/gps-gateway/internal/metrics"
	"github.com/Dan9191/gps-gateway/internal/models"
	"github.com/Dan9191/gps-gateway/internal/utils"
)

// operation describes one backend SOAP operation and how its records are projected
type operation struct {
	name   string
	record string
	fields []string
}

var (
	cardListOp = operation{
		name:   "F4_GetCardList",
		record: "Card",
		fields: models.CardFields,
	}
	statementOp = operation{
		name:   "F5_GetStatementTransactions",
		record: "Statement",
		fields: models.StatementTransactionFields,
	}
)

// call runs one round trip: envelope, POST, parse, extract.
// Transport failures surface as *BackendError; extraction never fails.
func (c *Client) call(ctx context.Context, op operation, params []param) ([]map[string]string, error) {
	start := time.Now()

	envelope, err := buildEnvelope(op.name, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op.name, err)
	}

	body, err := c.sendRequest(ctx, op, envelope)
	if err != nil {
		c.observe(op, metrics.OutcomeBackendError, start)
		return nil, err
	}

	doc, err := parseResponse(body)
	if err != nil {
		c.observe(op, metrics.OutcomeMalformed, start)
		return nil, err
	}

	rows := c.extractRecords(doc, op)
	if len(rows) == 0 {
		c.observe(op, metrics.OutcomeEmpty, start)
	} else {
		c.observe(op, metrics.OutcomeOK, start)
	}
	return rows, nil
}

// GetCardList returns the cards held by the customer identified by cpr
func (c *Client) GetCardList(ctx context.Context, cpr string) ([]models.Card, error) {
	c.log.Infof("Fetching card list for CPR: %s", utils.MaskID(cpr))

	rows, err := c.call(ctx, cardListOp, []param{
		{name: "pCpr", value: cpr},
	})
	if err != nil {
		c.logFailure(cardListOp, err)
		return nil, err
	}

	cards := make([]models.Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, models.Card(r))
	}

	c.log.Infof("Successfully fetched %d cards for CPR: %s", len(cards), utils.MaskID(cpr))
	return cards, nil
}

// GetStatementTransactions returns the statement lines of one card
func (c *Client) GetStatementTransactions(ctx context.Context, cpr, cardNumber, statementFlag string) ([]models.StatementTransaction, error) {
	c.log.Infof("Fetching statement transactions for card %s (flag %s)", utils.MaskCardNumber(cardNumber), statementFlag)

	rows, err := c.call(ctx, statementOp, []param{
		{name: "pCpr", value: cpr},
		{name: "pCardNumber", value: cardNumber},
		{name: "pStatementFlag", value: statementFlag},
	})
	if err != nil {
		c.logFailure(statementOp, err)
		return nil, err
	}

	txs := make([]models.StatementTransaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, models.StatementTransaction(r))
	}

	c.log.Infof("Successfully fetched %d statement transactions for card %s", len(txs), utils.MaskCardNumber(cardNumber))
	return txs, nil
}

func (c *Client) logFailure(op operation, err error) {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		c.log.WithField("operation", op.name).Errorf("GPS backend call failed: %v", backendErr.Err)
		return
	}
	c.log.WithField("operation", op.name).Errorf("GPS call failed: %v", err)
}
