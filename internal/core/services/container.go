package services

import (
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/platform/config"
)

// NewServicesContainer wires the service layer from the configured policies
// and the ledger store implementation.
func NewServicesContainer(cfg *config.Config, ledger portsrepo.LedgerRepository, users portsrepo.UserRepository) *portssvc.ServicesContainer {
	return &portssvc.ServicesContainer{
		User:     NewUserService(users),
		Session:  NewSessionRegistry(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionExpiryDuration),
		Account:  NewAccountService(ledger, cfg.TransferCeiling, cfg.AccountNumberMaxAttempts),
		Transfer: NewTransferService(ledger, cfg.TransferCeiling, cfg.TransferMaxRetries),
	}
}
