// Package constants holds shared domain constants.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider types.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Timeline actors recorded in performed_by.
const (
	ActorCustomer = "customer"
	ActorMerchant = "merchant"
	ActorSystem   = "system"
)
