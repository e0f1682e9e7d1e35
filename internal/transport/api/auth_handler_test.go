package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/banco-api/internal/domain"
	"github.com/fsdevblog/banco-api/internal/service"
	"github.com/fsdevblog/banco-api/internal/service/tokens"
	"github.com/fsdevblog/banco-api/internal/transport/api"
	"github.com/fsdevblog/banco-api/internal/transport/api/mocks"
	"github.com/fsdevblog/banco-api/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockUserService *mocks.MockUserServicer
	jwtSecret       []byte
	router          *gin.Engine
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUserService = mocks.NewMockUserServicer(s.mockCtrl)
	s.jwtSecret = []byte("secret")

	s.router = api.New(api.RouterArgs{
		UserService:  s.mockUserService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AuthHandlerTestSuite) makeJSONRequest(method, url string, payload any, opts ...func(*testutils.RequestOptions)) *http.Response {
	body, marshalErr := json.Marshal(payload)
	s.Require().NoError(marshalErr)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   bytes.NewReader(body),
	}, opts...)
	s.Require().NoError(err)
	return resp
}

func (s *AuthHandlerTestSuite) TestRegister() {
	createdUser := domain.User{ID: 1, Username: "alice"}
	issuedToken, tokenErr := tokens.GenerateUserJWT(createdUser.Username, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Eq(service.RegisterUserArgs{
			Username: "alice",
			Password: "password1",
		})).
		Return(&createdUser, issuedToken, nil)

	resp := s.makeJSONRequest(http.MethodPost, api.RouteGroup+api.RegisterRoute, gin.H{
		"username": "alice",
		"password": "password1",
	})
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
	// токен уходит сразу, отдельный логин после регистрации не нужен.
	s.Equal("Bearer "+issuedToken, resp.Header.Get("Authorization"))

	respBody, readErr := io.ReadAll(resp.Body)
	s.Require().NoError(readErr)
	s.JSONEq(`{"username": "alice"}`, string(respBody))
}

func (s *AuthHandlerTestSuite) TestRegister_DuplicateUsername() {
	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, "", domain.ErrDuplicateKey)

	resp := s.makeJSONRequest(http.MethodPost, api.RouteGroup+api.RegisterRoute, gin.H{
		"username": "alice",
		"password": "password1",
	})
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *AuthHandlerTestSuite) TestRegister_ValidationErrors() {
	// до сервиса дело не доходит.
	s.mockUserService.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	cases := []struct {
		name    string
		payload gin.H
	}{
		{name: "short password", payload: gin.H{"username": "alice", "password": "12345"}},
		{name: "empty username", payload: gin.H{"username": "", "password": "password1"}},
		{name: "missing password", payload: gin.H{"username": "alice"}},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.makeJSONRequest(http.MethodPost, api.RouteGroup+api.RegisterRoute, t.payload)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
		})
	}
}

func (s *AuthHandlerTestSuite) TestRegister_MalformedBody() {
	s.mockUserService.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    api.RouteGroup + api.RegisterRoute,
		Body:   bytes.NewBufferString("{not json"),
	})
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *AuthHandlerTestSuite) TestRegister_AlreadyAuthorized() {
	s.mockUserService.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

	token, tokenErr := tokens.GenerateUserJWT("alice", time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	resp := s.makeJSONRequest(http.MethodPost, api.RouteGroup+api.RegisterRoute, gin.H{
		"username": "alice",
		"password": "password1",
	}, testutils.WithHeader("Authorization", "Bearer "+token))
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthHandlerTestSuite) TestLogin() {
	savedUser := domain.User{ID: 1, Username: "alice"}
	issuedToken, tokenErr := tokens.GenerateUserJWT(savedUser.Username, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockUserService.EXPECT().
		Login(gomock.Any(), gomock.Eq(service.LoginUserArgs{
			Username: "alice",
			Password: "password1",
		})).
		Return(&savedUser, issuedToken, nil)

	resp := s.makeJSONRequest(http.MethodPost, api.RouteGroup+api.LoginRoute, gin.H{
		"username": "alice",
		"password": "password1",
	})
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Bearer "+issuedToken, resp.Header.Get("Authorization"))

	var respBody struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&respBody))
	s.Equal(issuedToken, respBody.AccessToken)
}

func (s *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	// снаружи неверный пароль и несуществующий юзер неразличимы.
	cases := []struct {
		name     string
		loginErr error
	}{
		{name: "unknown username", loginErr: domain.ErrRecordNotFound},
		{name: "wrong password", loginErr: domain.ErrPasswordMissMatch},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			s.mockUserService.EXPECT().
				Login(gomock.Any(), gomock.Any()).
				Return(nil, "", t.loginErr)

			resp := s.makeJSONRequest(http.MethodPost, api.RouteGroup+api.LoginRoute, gin.H{
				"username": "alice",
				"password": "password1",
			})
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(http.StatusUnauthorized, resp.StatusCode)

			respBody, readErr := io.ReadAll(resp.Body)
			s.Require().NoError(readErr)
			s.JSONEq(`{"error": "invalid credentials"}`, string(respBody))
		})
	}
}

func (s *AuthHandlerTestSuite) TestMe() {
	currentUser := domain.User{ID: 1, Username: "alice"}
	token, tokenErr := tokens.GenerateUserJWT(currentUser.Username, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockUserService.EXPECT().
		FindByUsername(gomock.Any(), currentUser.Username).
		Return(&currentUser, nil)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.RouteGroup + api.MeRoute,
	}, testutils.WithHeader("Authorization", "Bearer "+token))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	respBody, readErr := io.ReadAll(resp.Body)
	s.Require().NoError(readErr)
	s.JSONEq(`{"username": "alice"}`, string(respBody))
}

func (s *AuthHandlerTestSuite) TestMe_Unauthorized() {
	expiredToken, expErr := tokens.GenerateUserJWT("alice", -time.Minute, s.jwtSecret)
	s.Require().NoError(expErr)

	foreignToken, foreignErr := tokens.GenerateUserJWT("alice", time.Hour, []byte("another secret"))
	s.Require().NoError(foreignErr)

	cases := []struct {
		name   string
		header string
	}{
		{name: "no token", header: ""},
		{name: "expired token", header: "Bearer " + expiredToken},
		{name: "wrong signature", header: "Bearer " + foreignToken},
		{name: "garbage", header: "Bearer not.a.jwt"},
	}

	s.mockUserService.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Times(0)

	for _, t := range cases {
		s.Run(t.name, func() {
			var opts []func(*testutils.RequestOptions)
			if t.header != "" {
				opts = append(opts, testutils.WithHeader("Authorization", t.header))
			}

			resp, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    api.RouteGroup + api.MeRoute,
			}, opts...)
			s.Require().NoError(err)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func (s *AuthHandlerTestSuite) TestMe_DeletedUser() {
	// токен валиден, но subject уже удален из базы.
	token, tokenErr := tokens.GenerateUserJWT("ghost", time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockUserService.EXPECT().
		FindByUsername(gomock.Any(), "ghost").
		Return(nil, domain.ErrRecordNotFound)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    api.RouteGroup + api.MeRoute,
	}, testutils.WithHeader("Authorization", "Bearer "+token))
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
