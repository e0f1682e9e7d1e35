package api_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/service/tokens"
	"github.com/fsdevblog/banco-api/internal/transport/api"
	"github.com/fsdevblog/banco-api/internal/transport/api/mocks"
	"github.com/fsdevblog/banco-api/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountsHandlerTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockUserService    *mocks.MockUserServicer
	mockAccountService *mocks.MockAccountServicer
	jwtSecret          []byte
	router             *gin.Engine
	currentUser        domain.User
	authHeader         func(*testutils.RequestOptions)
}

func TestAccountsHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountsHandlerTestSuite))
}

func (s *AccountsHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *AccountsHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUserService = mocks.NewMockUserServicer(s.mockCtrl)
	s.mockAccountService = mocks.NewMockAccountServicer(s.mockCtrl)
	s.jwtSecret = []byte("secret")

	s.router = api.New(api.RouterArgs{
		UserService:    s.mockUserService,
		AccountService: s.mockAccountService,
		JWTSecretKey:   s.jwtSecret,
	})

	s.currentUser = domain.User{ID: 1, Username: "alice"}

	token, tokenErr := tokens.GenerateUserJWT(s.currentUser.Username, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	s.authHeader = testutils.WithHeader("Authorization", "Bearer "+token)

	// AuthRequired резолвит subject токена в юзера на каждый запрос.
	s.mockUserService.EXPECT().
		FindByUsername(gomock.Any(), s.currentUser.Username).
		Return(&s.currentUser, nil).AnyTimes()
}

func (s *AccountsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AccountsHandlerTestSuite) TestCreate() {
	createdAccount := domain.Account{
		ID:      1,
		Owner:   s.currentUser.Username,
		Balance: decimal.Zero,
	}

	s.mockAccountService.EXPECT().
		Create(gomock.Any(), s.currentUser.Username).
		Return(&createdAccount, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.RouteGroup + api.AccountsRoute,
	}, s.authHeader)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusCreated, resp.StatusCode)

	respBody, readErr := io.ReadAll(resp.Body)
	s.Require().NoError(readErr)
	s.JSONEq(`{"id": 1, "owner": "alice", "balance": 0}`, string(respBody))
}

func (s *AccountsHandlerTestSuite) TestCreate_AlreadyExists() {
	s.mockAccountService.EXPECT().
		Create(gomock.Any(), s.currentUser.Username).
		Return(nil, domain.ErrDuplicateKey)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.RouteGroup + api.AccountsRoute,
	}, s.authHeader)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *AccountsHandlerTestSuite) TestCreate_Unauthorized() {
	s.mockAccountService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.RouteGroup + api.AccountsRoute,
	})
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *AccountsHandlerTestSuite) TestIndex() {
	accounts := []domain.Account{
		{ID: 1, Owner: s.currentUser.Username, Balance: decimal.NewFromFloat(70.50)},
	}

	s.mockAccountService.EXPECT().
		GetByOwner(gomock.Any(), s.currentUser.Username).
		Return(accounts, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.RouteGroup + api.AccountsRoute,
	}, s.authHeader)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	respBody, readErr := io.ReadAll(resp.Body)
	s.Require().NoError(readErr)
	s.JSONEq(`[{"id": 1, "owner": "alice", "balance": 70.5}]`, string(respBody))
}

func (s *AccountsHandlerTestSuite) TestIndex_Empty() {
	s.mockAccountService.EXPECT().
		GetByOwner(gomock.Any(), s.currentUser.Username).
		Return(nil, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.RouteGroup + api.AccountsRoute,
	}, s.authHeader)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	respBody, readErr := io.ReadAll(resp.Body)
	s.Require().NoError(readErr)
	s.JSONEq(`[]`, string(respBody))
}

func (s *AccountsHandlerTestSuite) TestShow() {
	account := domain.Account{
		ID:      42,
		Owner:   s.currentUser.Username,
		Balance: decimal.NewFromFloat(100),
	}

	s.mockAccountService.EXPECT().
		FindByIDAndOwner(gomock.Any(), account.ID, s.currentUser.Username).
		Return(&account, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.RouteGroup + "/accounts/42",
	}, s.authHeader)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	respBody, readErr := io.ReadAll(resp.Body)
	s.Require().NoError(readErr)
	s.JSONEq(`{"id": 42, "owner": "alice", "balance": 100}`, string(respBody))
}

func (s *AccountsHandlerTestSuite) TestShow_NotFound() {
	// чужой счет отдает тот же 404, что и несуществующий.
	s.mockAccountService.EXPECT().
		FindByIDAndOwner(gomock.Any(), int64(42), s.currentUser.Username).
		Return(nil, domain.ErrRecordNotFound)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.RouteGroup + "/accounts/42",
	}, s.authHeader)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *AccountsHandlerTestSuite) TestShow_BadID() {
	s.mockAccountService.EXPECT().FindByIDAndOwner(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	cases := []struct {
		name string
		url  string
	}{
		{name: "not a number", url: api.RouteGroup + "/accounts/abc"},
		{name: "zero", url: api.RouteGroup + "/accounts/0"},
		{name: "negative", url: api.RouteGroup + "/accounts/-1"},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    t.url,
			}, s.authHeader)
			s.Require().NoError(err)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(http.StatusNotFound, resp.StatusCode)
		})
	}
}
