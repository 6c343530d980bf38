package service

import (
	"fmt"

	"github.com/zentfin/zent-finance/internal/clock"
	"github.com/zentfin/zent-finance/pkg/uow"
)

type AppServices struct {
	AccrualService *AccrualService
	WalletService  *WalletService
	ReportService  *ReportService
}

func Factory(unitOfWork uow.UOW, c clock.Clock) (*AppServices, error) {
	accrualService, accrualServiceErr := NewAccrualService(unitOfWork, c)
	if accrualServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accrualServiceErr.Error())
	}

	walletService, walletServiceErr := NewWalletService(unitOfWork, c)
	if walletServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", walletServiceErr.Error())
	}

	reportService, reportServiceErr := NewReportService(unitOfWork, c)
	if reportServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", reportServiceErr.Error())
	}

	return &AppServices{
		AccrualService: accrualService,
		WalletService:  walletService,
		ReportService:  reportService,
	}, nil
}
