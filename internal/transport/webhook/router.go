package webhook

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"net/http"

	"github.com/zentfin/zent-finance/internal/transport/webhook/middlewares"
)

const (
	RootRoute    = "/"
	WebhookRoute = "/webhook"
)

type RouterArgs struct {
	Logger        *logrus.Logger
	WalletService WalletServicer
	Replier       Replier
	WebsiteURL    string
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	handler := NewHandler(args.WalletService, args.Replier, args.WebsiteURL)

	r.GET(RootRoute, func(c *gin.Context) {
		c.String(http.StatusOK, "Zent Finance engine is running! Send POST requests to /webhook for incoming messages.")
	})
	r.POST(WebhookRoute, handler.Receive)
	return r
}
