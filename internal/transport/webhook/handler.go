package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"net/http"

	"github.com/zentfin/zent-finance/internal/domain"
)

const DefaultServiceTimeout = 3 * time.Second

type Handler struct {
	wallet     WalletServicer
	replier    Replier
	websiteURL string
}

func NewHandler(wallet WalletServicer, replier Replier, websiteURL string) *Handler {
	return &Handler{
		wallet:     wallet,
		replier:    replier,
		websiteURL: websiteURL,
	}
}

type webhookParams struct {
	Data struct {
		From string `json:"from"`
		Body string `json:"body"`
	} `json:"data"`
}

// Receive POST WebhookRoute. Принимает входящее сообщение от шлюза, распознает команду
// и отвечает юзеру через тот же шлюз.
func (h *Handler) Receive(c *gin.Context) {
	var params webhookParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	from := params.Data.From
	message := strings.TrimSpace(params.Data.Body)
	if from == "" || message == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, userErr := h.wallet.FindUserByPhone(reqCtx, from)
	if userErr != nil {
		if errors.Is(userErr, domain.ErrRecordNotFound) {
			_ = h.replier.Notify(reqCtx,
				from, "Hello! I could not find your account. Please register on the website first.")
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, userErr).SetType(gin.ErrorTypePrivate)
		return
	}

	reply := h.executeCommand(reqCtx, user, ParseCommand(message))

	_ = h.replier.Notify(reqCtx, user.Phone, reply)
	c.AbortWithStatus(http.StatusOK)
}

// executeCommand выполняет команду и возвращает текст ответа. Все суммы в ответах берутся
// из значений зафиксированных сервисным слоем.
func (h *Handler) executeCommand(ctx context.Context, user *domain.User, cmd Command) string {
	switch cmd.Kind {
	case CommandDeposit:
		updated, err := h.wallet.Deposit(ctx, user.ID, cmd.Amount)
		if err != nil {
			return somethingWentWrongReply
		}
		return fmt.Sprintf("Deposit of %s successful. New balance: %s.", cmd.Amount, updated.Balance)

	case CommandWithdraw:
		updated, err := h.wallet.Withdraw(ctx, user.ID, cmd.Amount)
		if err != nil {
			if errors.Is(err, domain.ErrNotEnoughBalance) {
				return "You do not have enough balance."
			}
			return somethingWentWrongReply
		}
		return fmt.Sprintf("Withdrawal of %s successful. New balance: %s.", cmd.Amount, updated.Balance)

	case CommandInvest:
		investment, plan, err := h.wallet.Invest(ctx, user.ID, cmd.Amount, cmd.PlanName)
		if err != nil {
			var notFoundErr *domain.PlanNotFoundError
			switch {
			case errors.As(err, &notFoundErr):
				return fmt.Sprintf("Plan %s not found.", strings.ToUpper(cmd.PlanName))
			case errors.Is(err, domain.ErrBelowMinInvestment):
				return fmt.Sprintf("Minimum investment for %s is %s.", plan.Name, plan.MinInvestment)
			case errors.Is(err, domain.ErrNotEnoughBalance):
				return "You do not have enough balance."
			default:
				return somethingWentWrongReply
			}
		}
		return fmt.Sprintf(
			"Investment of %s in %s started! Ends on %s.",
			investment.Amount, plan.Name, investment.EndDate.Format(time.DateOnly),
		)

	default:
		return fmt.Sprintf(
			"I can help with: \"deposit <amount>\", \"withdraw <amount>\", \"invest <amount> <plan>\". "+
				"For everything else visit %s.",
			h.websiteURL,
		)
	}
}

const somethingWentWrongReply = "Something went wrong, please try again later."
