package services

// ServicesContainer bundles the service facades handed to the HTTP layer.
type ServicesContainer struct {
	User     UserSvcFacade
	Session  SessionSvcFacade
	Account  AccountSvcFacade
	Transfer TransferSvcFacade
}
