package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

// TestSend Тест отправки сообщения: токен инстанса уходит в теле запроса, путь содержит инстанс.
func (s *ClientTestSuite) TestSend() {
	const (
		instance = "instance104"
		token    = "secret-token"
		to       = "+15550001"
		body     = "Hello!"
	)

	var gotPath string
	var gotParams chatMessageParams

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		s.Equal(http.MethodPost, r.Method)
		s.Equal("application/json", r.Header.Get("Content-Type"))

		decodeErr := json.NewDecoder(r.Body).Decode(&gotParams)
		s.NoError(decodeErr)
		w.WriteHeader(http.StatusOK)
	}))

	client := NewHTTPClient(s.server.URL, instance, token)
	err := client.Send(s.T().Context(), to, body)
	s.Require().NoError(err)

	s.Equal("/"+instance+"/messages/chat", gotPath)
	s.Equal(token, gotParams.Token)
	s.Equal(to, gotParams.To)
	s.Equal(body, gotParams.Body)
}

// TestSend_UnexpectedStatus Тест на неуспешные статусы шлюза: возвращается типизированная ошибка.
func (s *ClientTestSuite) TestSend_UnexpectedStatus() {
	cases := []struct {
		name       string
		httpStatus int
	}{
		{name: "unauthorized", httpStatus: http.StatusUnauthorized},
		{name: "too many requests", httpStatus: http.StatusTooManyRequests},
		{name: "internal error", httpStatus: http.StatusInternalServerError},
	}

	var status int
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))

	client := NewHTTPClient(s.server.URL, "instance104", "secret-token")

	for _, t := range cases {
		s.Run(t.name, func() {
			status = t.httpStatus

			err := client.Send(s.T().Context(), "+15550001", "Hello!")
			s.Require().Error(err)

			var statusErr *StatusCodeError
			s.Require().ErrorAs(err, &statusErr)
			s.Equal(t.httpStatus, statusErr.Code)
		})
	}
}
