package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/handlers"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
)

type JournalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockJournal *MockJournalService
	userID      string
	token       string
}

func (suite *JournalHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	suite.mockJournal = new(MockJournalService)
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite, suite.userID)

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterJournalRoutes(suite.router.Group("/api/v1"), suite.mockJournal)
}

func (suite *JournalHandlerTestSuite) TearDownTest() {
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) sampleEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		UserID:      suite.userID,
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Description: "Owner contribution",
		Source:      domain.SourceRef{Kind: domain.SourceManual},
		Lines: []domain.JournalLine{
			{LineID: "l1", AccountID: "cash", Type: domain.Debit, Amount: decimal.NewFromInt(500)},
			{LineID: "l2", AccountID: "capital", Type: domain.Credit, Amount: decimal.NewFromInt(500)},
		},
	}
}

const balancedEntryBody = `{
	"date": "2024-05-10",
	"description": "Owner contribution",
	"lines": [
		{"accountID": "cash", "type": "DEBIT", "amount": "500"},
		{"accountID": "capital", "type": "CREDIT", "amount": "500"}
	]
}`

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	entry := suite.sampleEntry()
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Date == "2024-05-10" && len(req.Lines) == 2 && req.Lines[0].Amount.Equal(decimal.NewFromInt(500))
	})).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal("2024-05-10", resp.Date)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(500)))
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Unbalanced() {
	suite.mockJournal.On("CreateJournalEntry", mock.Anything, suite.userID, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(nil, fmt.Errorf("%w: debits 500 do not equal credits 400", apperrors.ErrValidation)).Once()

	body := `{"date":"2024-05-10","description":"x","lines":[{"accountID":"cash","type":"DEBIT","amount":"500"},{"accountID":"capital","type":"CREDIT","amount":"400"}]}`
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "do not equal")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_RejectedByBinding() {
	tests := []struct {
		name string
		body string
	}{
		{"single line", `{"date":"2024-05-10","description":"x","lines":[{"accountID":"cash","type":"DEBIT","amount":"1"}]}`},
		{"zero amount", `{"date":"2024-05-10","description":"x","lines":[{"accountID":"cash","type":"DEBIT","amount":"0"},{"accountID":"bank","type":"CREDIT","amount":"0"}]}`},
		{"bad line type", `{"date":"2024-05-10","description":"x","lines":[{"accountID":"cash","type":"DR","amount":"1"},{"accountID":"bank","type":"CREDIT","amount":"1"}]}`},
		{"bad date", `{"date":"10/05/2024","description":"x","lines":[{"accountID":"cash","type":"DEBIT","amount":"1"},{"accountID":"bank","type":"CREDIT","amount":"1"}]}`},
		{"bad time", `{"date":"2024-05-10","time":"25:00","description":"x","lines":[{"accountID":"cash","type":"DEBIT","amount":"1"},{"accountID":"bank","type":"CREDIT","amount":"1"}]}`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/journal-entries", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestListEntries_DefaultsAndFilter() {
	expected := dto.ListJournalEntriesParams{Limit: 20, Source: "expense"}
	suite.mockJournal.On("ListJournalEntries", mock.Anything, suite.userID, expected).
		Return(&dto.ListJournalEntriesResponse{Entries: []dto.JournalEntryResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?source=expense", "")

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListEntries_UnknownSource() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?source=payroll", "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestUpdateEntry_NotFound() {
	suite.mockJournal.On("UpdateJournalEntry", mock.Anything, suite.userID, "e1", mock.AnythingOfType("dto.UpdateJournalEntryRequest")).
		Return(nil, apperrors.NewNotFoundError("journal entry")).Once()

	w := suite.do(http.MethodPut, "/api/v1/journal-entries/e1", balancedEntryBody)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry() {
	suite.mockJournal.On("DeleteJournalEntry", mock.Anything, suite.userID, "e1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/e1", "")

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
