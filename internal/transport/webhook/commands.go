package webhook

import (
	"regexp"

	"github.com/shopspring/decimal"
)

type CommandKind int

const (
	CommandUnrecognized CommandKind = iota
	CommandDeposit
	CommandWithdraw
	CommandInvest
)

// Command распознанная команда из текста сообщения. Разбор текста - не часть движка:
// движок получает уже типизированную команду.
type Command struct {
	Kind     CommandKind
	Amount   decimal.Decimal
	PlanName string
}

var (
	depositRe  = regexp.MustCompile(`(?i)deposit (\d+)`)
	withdrawRe = regexp.MustCompile(`(?i)withdraw (\d+)`)
	investRe   = regexp.MustCompile(`(?i)invest (\d+) (\w+)`)
)

// ParseCommand распознает команду в свободном тексте. Нераспознанный текст превращается
// в CommandUnrecognized - на него отвечает fallback-подсказка.
func ParseCommand(text string) Command {
	if m := depositRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: CommandDeposit, Amount: decimal.RequireFromString(m[1])}
	}
	if m := withdrawRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: CommandWithdraw, Amount: decimal.RequireFromString(m[1])}
	}
	if m := investRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: CommandInvest, Amount: decimal.RequireFromString(m[1]), PlanName: m[2]}
	}
	return Command{Kind: CommandUnrecognized}
}
