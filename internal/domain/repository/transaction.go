package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// The order commit path runs every conditional update (stock, voucher, points, order insert)
// through one factory so a single failing condition rolls the whole commit back.
type RepositoryFactory interface {
	// NewCatalogRepository returns a CatalogRepository bound to the current transaction.
	NewCatalogRepository() CatalogRepository

	// NewVoucherRepository returns a VoucherRepository bound to the current transaction.
	NewVoucherRepository() VoucherRepository

	// NewLoyaltyRepository returns a LoyaltyRepository bound to the current transaction.
	NewLoyaltyRepository() LoyaltyRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository
}
