// Package constants holds values shared across layers.
package constants

// Environment names
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Document store drivers
const (
	StoreDriverFirestore = "firestore"
	StoreDriverMemory    = "memory"
)

// Token verification providers
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Collection names in the document store.
const (
	CollectionUsers          = "users"
	CollectionFriendRequests = "friend_requests"
	CollectionFriendships    = "friendships"
	CollectionLocations      = "locations"
	CollectionAlerts         = "alerts"
)

// Notification types carried in the push data payload under the "type" key.
const (
	PushTypeFriendRequest  = "friend_request"
	PushTypeFriendAccepted = "friend_accepted"
	PushTypeAlert          = "alert"
)

// Android notification channels registered by the mobile client.
const (
	ChannelFriendRequests = "friend_requests"
	ChannelAlerts         = "alerts"
)
