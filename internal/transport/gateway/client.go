package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"net/http"
)

const RouteChatMessage = "/%s/messages/chat"

// HTTPClient является реализацией интерфейса Sender для HTTP запросов к шлюзу сообщений.
// Токен инстанса передается в теле запроса - так того требует API шлюза.
type HTTPClient struct {
	baseURL    string
	instance   string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, instance, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		instance:   instance,
		token:      token,
		httpClient: http.DefaultClient,
	}
}

type chatMessageParams struct {
	Token string `json:"token"`
	To    string `json:"to"`
	Body  string `json:"body"`
}

// Send отправляет сообщение body на адрес to. В случае ошибки возвращает или *StatusCodeError
// или не типизированную ошибку. Ответ шлюза не парсится: успешный статус и есть подтверждение.
//
//nolint:nonamedreturns
func (c *HTTPClient) Send(ctx context.Context, to string, body string) (err error) {
	url := c.baseURL + fmt.Sprintf(RouteChatMessage, c.instance)

	payload, marshalErr := json.Marshal(chatMessageParams{
		Token: c.token,
		To:    to,
		Body:  body,
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return NewStatusCodeError(resp.StatusCode)
	}
	return nil
}
