package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Dan9191/gps-gateway/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Backend is the card-management system behind the gateway
type Backend interface {
	GetCardList(ctx context.Context, cpr string) ([]models.Card, error)
	GetStatementTransactions(ctx context.Context, cpr, cardNumber, statementFlag string) ([]models.StatementTransaction, error)
}

// CardListQuery holds the inputs of the card list operation
type CardListQuery struct {
	CPR string `query:"cpr" validate:"required"`
}

// StatementQuery holds the inputs of the statement transactions operation.
// StatementFlag is optional and passed through as-is; empty means models.DefaultStatementFlag.
type StatementQuery struct {
	CPR           string `query:"cpr" validate:"required"`
	CardNumber    string `query:"cardNumber" validate:"required"`
	StatementFlag string `query:"statementFlag"`
}

// Service validates inbound queries and delegates them to the backend
type Service struct {
	backend  Backend
	log      *logrus.Logger
	validate *validator.Validate
}

// NewService initializes a new service
func NewService(backend Backend, log *logrus.Logger) *Service {
	v := validator.New()
	// report fields by their query parameter name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return &Service{backend: backend, log: log, validate: v}
}

// ListCards returns the cards of a customer
func (s *Service) ListCards(ctx context.Context, q CardListQuery) ([]models.Card, error) {
	if err := s.check(q); err != nil {
		return nil, err
	}
	return s.backend.GetCardList(ctx, q.CPR)
}

// ListStatementTransactions returns the statement lines of one card
func (s *Service) ListStatementTransactions(ctx context.Context, q StatementQuery) ([]models.StatementTransaction, error) {
	if err := s.check(q); err != nil {
		return nil, err
	}
	flag := q.StatementFlag
	if flag == "" {
		flag = models.DefaultStatementFlag
	}
	return s.backend.GetStatementTransactions(ctx, q.CPR, q.CardNumber, flag)
}

// check runs struct validation and converts the first failure into a *ValidationError
func (s *Service) check(q interface{}) error {
	err := s.validate.Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		s.log.Warnf("Rejected request: %s is missing", verrs[0].Field())
		return &ValidationError{Field: verrs[0].Field()}
	}
	return fmt.Errorf("failed to validate query: %w", err)
}
